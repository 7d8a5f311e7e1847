package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

func newRefresh(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [id...]",
		Short: "Refresh balances from the network (all keypairs when no id is given)",
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			ids := make([]model.RecordID, 0, len(args))
			for _, a := range args {
				ids = append(ids, model.RecordID(a))
			}
			if len(ids) == 0 {
				for _, rec := range m.Keypairs() {
					ids = append(ids, rec.ID)
				}
			}

			var failed int
			for _, id := range ids {
				balance, err := m.RefreshBalance(cmd.Context(), id)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\terror: %v\n", id, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s SOL\n", id, common.FormatSOL(balance))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d balance refreshes failed; cached balances were kept", failed, len(ids))
			}
			return nil
		}),
	}
}

func newTransfer(w *wallet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send SOL from a keypair",
		Example: `  keywallet transfer --from 0192f1c4-... --to 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin --amount 0.25`,
		Args: cobra.NoArgs,
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			amount, _ := cmd.Flags().GetString("amount")

			res, err := m.Transfer(cmd.Context(), model.TransferRequest{
				SourceID:    model.RecordID(from),
				Destination: to,
				Amount:      amount,
			})
			printResult(cmd.OutOrStdout(), res, err)
			return err
		}),
	}
	cmd.Flags().String("from", "", "Source keypair id")
	cmd.Flags().String("to", "", "Destination address")
	cmd.Flags().String("amount", "", "Amount in SOL")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newAirdrop(w *wallet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop <id>",
		Short: "Request test SOL from the network faucet",
		Args:  cobra.ExactArgs(1),
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			amount, _ := cmd.Flags().GetString("amount")
			res, err := m.RequestFunds(cmd.Context(), model.RecordID(args[0]), amount)
			printResult(cmd.OutOrStdout(), res, err)
			return err
		}),
	}
	cmd.Flags().String("amount", "1", "Amount in SOL")
	return cmd
}

// printResult reports whatever is known about a submitted transaction
func printResult(out io.Writer, res *model.TransferResult, err error) {
	if res == nil {
		return
	}
	fmt.Fprintf(out, "Signature: %s\nOutcome: %s\n", res.Signature, res.Outcome)

	switch {
	case apperr.Is(err, apperr.KindConfirmationTimeout):
		fmt.Fprintln(out, "The outcome is unknown: the transaction may still land. Check the signature before retrying.")
	case err == nil && !res.BalanceRefreshed:
		log.Warn().Str("signature", res.Signature).Msg("Balance not refreshed, run refresh later")
	}
}
