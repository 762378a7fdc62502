// Package state implements the reducer that maps (state, action) to the next
// AppState. It is the only mutation surface for sdvig data.
package state

import "tableflip.dev/sdvig/pkg/model"

// ActionType is the wire name of an action.
type ActionType string

// Action is a command understood by the Reducer. Values of types the reducer
// does not know are ignored.
type Action interface {
	Type() ActionType
}

const (
	TypeAddRoutine    ActionType = "ADD_ROUTINE"
	TypeUpdateRoutine ActionType = "UPDATE_ROUTINE"
	TypeDeleteRoutine ActionType = "DELETE_ROUTINE"
	TypeToggleRoutine ActionType = "TOGGLE_ROUTINE"

	TypeAddEvent            ActionType = "ADD_EVENT"
	TypeUpdateEvent         ActionType = "UPDATE_EVENT"
	TypeDeleteEvent         ActionType = "DELETE_EVENT"
	TypeToggleEvent         ActionType = "TOGGLE_EVENT"
	TypeMoveEventToTomorrow ActionType = "MOVE_EVENT_TO_TOMORROW"

	TypeSetDayTasks   ActionType = "SET_DAY_TASKS"
	TypeToggleDayTask ActionType = "TOGGLE_DAY_TASK"
	TypeUpdateDayTask ActionType = "UPDATE_DAY_TASK"
	TypeDeleteDayTask ActionType = "DELETE_DAY_TASK"

	TypeAddWallet         ActionType = "ADD_WALLET"
	TypeUpdateWallet      ActionType = "UPDATE_WALLET"
	TypeDeleteWallet      ActionType = "DELETE_WALLET"
	TypeAddTransaction    ActionType = "ADD_TRANSACTION"
	TypeDeleteTransaction ActionType = "DELETE_TRANSACTION"
	TypeAddCategory       ActionType = "ADD_CATEGORY"

	TypeAddTask    ActionType = "ADD_TASK"
	TypeUpdateTask ActionType = "UPDATE_TASK"
	TypeDeleteTask ActionType = "DELETE_TASK"
	TypeToggleTask ActionType = "TOGGLE_TASK"

	TypeAddHabit    ActionType = "ADD_HABIT"
	TypeUpdateHabit ActionType = "UPDATE_HABIT"
	TypeDeleteHabit ActionType = "DELETE_HABIT"
	TypeToggleHabit ActionType = "TOGGLE_HABIT"

	TypeAddIdea    ActionType = "ADD_IDEA"
	TypeUpdateIdea ActionType = "UPDATE_IDEA"
	TypeDeleteIdea ActionType = "DELETE_IDEA"

	TypeUpdateProfile ActionType = "UPDATE_PROFILE"

	TypeAddDocument    ActionType = "ADD_DOCUMENT"
	TypeDeleteDocument ActionType = "DELETE_DOCUMENT"

	TypeAddFocusSession ActionType = "ADD_FOCUS_SESSION"

	TypeSetTheme  ActionType = "SET_THEME"
	TypeLoadState ActionType = "LOAD_STATE"
)

// Routines

type AddRoutine struct{ Routine model.Routine }
type UpdateRoutine struct{ Routine model.Routine }
type DeleteRoutine struct{ ID string }
type ToggleRoutine struct{ ID, Date string }

func (AddRoutine) Type() ActionType    { return TypeAddRoutine }
func (UpdateRoutine) Type() ActionType { return TypeUpdateRoutine }
func (DeleteRoutine) Type() ActionType { return TypeDeleteRoutine }
func (ToggleRoutine) Type() ActionType { return TypeToggleRoutine }

// Events

type AddEvent struct{ Event model.Event }
type UpdateEvent struct{ Event model.Event }
type DeleteEvent struct{ ID string }
type ToggleEvent struct{ ID string }

// MoveEventToTomorrow shifts the event to the next calendar day.
type MoveEventToTomorrow struct{ ID string }

func (AddEvent) Type() ActionType            { return TypeAddEvent }
func (UpdateEvent) Type() ActionType         { return TypeUpdateEvent }
func (DeleteEvent) Type() ActionType         { return TypeDeleteEvent }
func (ToggleEvent) Type() ActionType         { return TypeToggleEvent }
func (MoveEventToTomorrow) Type() ActionType { return TypeMoveEventToTomorrow }

// Day tasks

// SetDayTasks replaces the whole list for Date.
type SetDayTasks struct {
	Date  string
	Tasks []model.DayTask
}
type ToggleDayTask struct{ Date, TaskID string }
type UpdateDayTask struct {
	Date string
	Task model.DayTask
}
type DeleteDayTask struct{ Date, TaskID string }

func (SetDayTasks) Type() ActionType   { return TypeSetDayTasks }
func (ToggleDayTask) Type() ActionType { return TypeToggleDayTask }
func (UpdateDayTask) Type() ActionType { return TypeUpdateDayTask }
func (DeleteDayTask) Type() ActionType { return TypeDeleteDayTask }

// Finance

type AddWallet struct{ Wallet model.Wallet }
type UpdateWallet struct{ Wallet model.Wallet }

// DeleteWallet removes the wallet and every transaction that references it.
type DeleteWallet struct{ ID string }

// AddTransaction records the transaction and applies it to its wallet.
type AddTransaction struct{ Transaction model.Transaction }

// DeleteTransaction removes the transaction and reverts its wallet effect.
type DeleteTransaction struct{ ID string }
type AddCategory struct{ Name string }

func (AddWallet) Type() ActionType         { return TypeAddWallet }
func (UpdateWallet) Type() ActionType      { return TypeUpdateWallet }
func (DeleteWallet) Type() ActionType      { return TypeDeleteWallet }
func (AddTransaction) Type() ActionType    { return TypeAddTransaction }
func (DeleteTransaction) Type() ActionType { return TypeDeleteTransaction }
func (AddCategory) Type() ActionType       { return TypeAddCategory }

// Tasks

type AddTask struct{ Task model.Task }
type UpdateTask struct{ Task model.Task }

// DeleteTask removes the task and all of its descendants.
type DeleteTask struct{ ID string }

// ToggleTask flips completion and may complete the parent.
type ToggleTask struct{ ID string }

func (AddTask) Type() ActionType    { return TypeAddTask }
func (UpdateTask) Type() ActionType { return TypeUpdateTask }
func (DeleteTask) Type() ActionType { return TypeDeleteTask }
func (ToggleTask) Type() ActionType { return TypeToggleTask }

// Habits

type AddHabit struct{ Habit model.Habit }
type UpdateHabit struct{ Habit model.Habit }
type DeleteHabit struct{ ID string }

// ToggleHabit flips membership of Date in the habit's completed dates.
type ToggleHabit struct{ ID, Date string }

func (AddHabit) Type() ActionType    { return TypeAddHabit }
func (UpdateHabit) Type() ActionType { return TypeUpdateHabit }
func (DeleteHabit) Type() ActionType { return TypeDeleteHabit }
func (ToggleHabit) Type() ActionType { return TypeToggleHabit }

// Inbox, documents, focus and profile

type AddIdea struct{ Idea model.Idea }
type UpdateIdea struct{ Idea model.Idea }
type DeleteIdea struct{ ID string }
type UpdateProfile struct{ Profile model.Profile }
type AddDocument struct{ Document model.Document }
type DeleteDocument struct{ ID string }
type AddFocusSession struct{ Session model.FocusSession }

func (AddIdea) Type() ActionType         { return TypeAddIdea }
func (UpdateIdea) Type() ActionType      { return TypeUpdateIdea }
func (DeleteIdea) Type() ActionType      { return TypeDeleteIdea }
func (UpdateProfile) Type() ActionType   { return TypeUpdateProfile }
func (AddDocument) Type() ActionType     { return TypeAddDocument }
func (DeleteDocument) Type() ActionType  { return TypeDeleteDocument }
func (AddFocusSession) Type() ActionType { return TypeAddFocusSession }

// Settings and hydration

type SetTheme struct{ Theme model.Theme }

// LoadState replaces the whole aggregate. It is used for startup hydration
// and backup import and trusts its payload.
type LoadState struct{ State *model.AppState }

func (SetTheme) Type() ActionType  { return TypeSetTheme }
func (LoadState) Type() ActionType { return TypeLoadState }
