package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/sdvig/pkg/model"
)

// ErrUnknownAction is returned by Decode for an unrecognized type tag.
var ErrUnknownAction = errors.New("state: unknown action type")

type envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type dated struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type datedTask struct {
	Date   string          `json:"date"`
	TaskID string          `json:"taskId"`
	Task   model.DayTask   `json:"task"`
	Tasks  []model.DayTask `json:"tasks"`
}

type decoder func(json.RawMessage) (Action, error)

// payload adapts a typed payload constructor into a decoder.
func payload[T any](wrap func(T) Action) decoder {
	return func(raw json.RawMessage) (Action, error) {
		var v T
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
		}
		return wrap(v), nil
	}
}

var decoders = map[ActionType]decoder{
	TypeAddRoutine:    payload(func(v model.Routine) Action { return AddRoutine{Routine: v} }),
	TypeUpdateRoutine: payload(func(v model.Routine) Action { return UpdateRoutine{Routine: v} }),
	TypeDeleteRoutine: payload(func(id string) Action { return DeleteRoutine{ID: id} }),
	TypeToggleRoutine: payload(func(v dated) Action { return ToggleRoutine{ID: v.ID, Date: v.Date} }),

	TypeAddEvent:            payload(func(v model.Event) Action { return AddEvent{Event: v} }),
	TypeUpdateEvent:         payload(func(v model.Event) Action { return UpdateEvent{Event: v} }),
	TypeDeleteEvent:         payload(func(id string) Action { return DeleteEvent{ID: id} }),
	TypeToggleEvent:         payload(func(id string) Action { return ToggleEvent{ID: id} }),
	TypeMoveEventToTomorrow: payload(func(id string) Action { return MoveEventToTomorrow{ID: id} }),

	TypeSetDayTasks:   payload(func(v datedTask) Action { return SetDayTasks{Date: v.Date, Tasks: v.Tasks} }),
	TypeToggleDayTask: payload(func(v datedTask) Action { return ToggleDayTask{Date: v.Date, TaskID: v.TaskID} }),
	TypeUpdateDayTask: payload(func(v datedTask) Action { return UpdateDayTask{Date: v.Date, Task: v.Task} }),
	TypeDeleteDayTask: payload(func(v datedTask) Action { return DeleteDayTask{Date: v.Date, TaskID: v.TaskID} }),

	TypeAddWallet:         payload(func(v model.Wallet) Action { return AddWallet{Wallet: v} }),
	TypeUpdateWallet:      payload(func(v model.Wallet) Action { return UpdateWallet{Wallet: v} }),
	TypeDeleteWallet:      payload(func(id string) Action { return DeleteWallet{ID: id} }),
	TypeAddTransaction:    payload(func(v model.Transaction) Action { return AddTransaction{Transaction: v} }),
	TypeDeleteTransaction: payload(func(id string) Action { return DeleteTransaction{ID: id} }),
	TypeAddCategory:       payload(func(name string) Action { return AddCategory{Name: name} }),

	TypeAddTask:    payload(func(v model.Task) Action { return AddTask{Task: v} }),
	TypeUpdateTask: payload(func(v model.Task) Action { return UpdateTask{Task: v} }),
	TypeDeleteTask: payload(func(id string) Action { return DeleteTask{ID: id} }),
	TypeToggleTask: payload(func(id string) Action { return ToggleTask{ID: id} }),

	TypeAddHabit:    payload(func(v model.Habit) Action { return AddHabit{Habit: v} }),
	TypeUpdateHabit: payload(func(v model.Habit) Action { return UpdateHabit{Habit: v} }),
	TypeDeleteHabit: payload(func(id string) Action { return DeleteHabit{ID: id} }),
	TypeToggleHabit: payload(func(v dated) Action { return ToggleHabit{ID: v.ID, Date: v.Date} }),

	TypeAddIdea:    payload(func(v model.Idea) Action { return AddIdea{Idea: v} }),
	TypeUpdateIdea: payload(func(v model.Idea) Action { return UpdateIdea{Idea: v} }),
	TypeDeleteIdea: payload(func(id string) Action { return DeleteIdea{ID: id} }),

	TypeUpdateProfile: payload(func(v model.Profile) Action { return UpdateProfile{Profile: v} }),

	TypeAddDocument:    payload(func(v model.Document) Action { return AddDocument{Document: v} }),
	TypeDeleteDocument: payload(func(id string) Action { return DeleteDocument{ID: id} }),

	TypeAddFocusSession: payload(func(v model.FocusSession) Action { return AddFocusSession{Session: v} }),

	TypeSetTheme: payload(func(v model.Theme) Action { return SetTheme{Theme: v} }),
	TypeLoadState: payload(func(v *model.AppState) Action {
		if v != nil {
			v.Normalize()
		}
		return LoadState{State: v}
	}),
}

// Decode parses a {"type": ..., "payload": ...} envelope into an Action.
// Payload shapes follow the action: a bare id string for deletes and simple
// toggles, {id, date} for habit and routine toggles, {date, taskId|task|tasks}
// for day tasks, and the entity itself for adds and updates.
func Decode(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("state: decode action: %w", err)
	}
	dec, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, env.Type)
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("state: decode %s payload: %w", env.Type, err)
	}
	return a, nil
}
