package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/commands/options"
	"tableflip.dev/sdvig/pkg/runner/finance"
)

func addWallet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "wallet",
		Aliases: []string{"wallets", "w"},
		Short:   "Manage wallets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWalletAdd(cmd)
	addWalletRemove(cmd)
	addWalletList(cmd)

	topLevel.AddCommand(cmd)
}

func addWalletAdd(parent *cobra.Command) {
	var balance, currency string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a wallet",
		Example: `
sdvig wallet add cash --balance=120.50 --currency=EUR
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a wallet name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := finance.AddWallet{
					Name:     strings.Join(args, " "),
					Balance:  balance,
					Currency: currency,
					Store:    s,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "0", "Starting balance.")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code, example: --currency=USD.")

	parent.AddCommand(cmd)
}

func addWalletRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <wallet id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a wallet and its transactions",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a wallet id")
			}
			return nil
		},
		ValidArgsFunction: walletCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := finance.RemoveWallet{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addWalletList(parent *cobra.Command) {
	io := &options.IDOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:     "ls [wallet id]",
		Aliases: []string{"list"},
		Short:   "List balances and monthly totals, or one wallet's transactions",
		Example: `
sdvig wallet ls
sdvig wallet ls --month=2024-05
sdvig wallet ls <wallet id> --show-id
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: walletCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := finance.ListWallets{ShowID: io.ShowID, Month: vo.Month, Store: s}
				if len(args) == 1 {
					r.WalletID = args[0]
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddMonthArgs(cmd, vo)

	parent.AddCommand(cmd)
}

func addTx(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record income and expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTxAdd(cmd)
	addTxRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTxAdd(parent *cobra.Command) {
	do := &options.DateOptions{}
	var expense bool
	var category, note string

	cmd := &cobra.Command{
		Use:   "add <wallet id> <amount>",
		Short: "Record a transaction",
		Example: `
sdvig tx add <wallet id> 2500 --category=salary
sdvig tx add <wallet id> 12.40 --expense --category=food --note="lunch"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a wallet id and an amount")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return walletCompletions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				date, err := do.GetOn(time.Now())
				if err != nil {
					return err
				}
				r := finance.AddTransaction{
					WalletID: args[0],
					Amount:   args[1],
					Expense:  expense,
					Category: category,
					Note:     note,
					Date:     date,
					Store:    s,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, do)
	cmd.Flags().BoolVarP(&expense, "expense", "e", false, "Record money going out.")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category; unknown ones are added.")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note.")

	parent.AddCommand(cmd)
}

func addTxRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <transaction id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a transaction and revert its balance change",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a transaction id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, false, func(ctx context.Context, s *app.Store) error {
				r := finance.RemoveTransaction{ID: args[0], Store: s}
				return r.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}
