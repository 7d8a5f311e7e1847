package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

func newCreate(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generate a new keypair",
		Args:  cobra.NoArgs,
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			rec, err := m.CreateKeypair()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\nAddress: %s\n", rec.ID, rec.PublicKey)
			return nil
		}),
	}
}

func newList(w *wallet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keypairs and cached balances",
		Example: `  keywallet list
  keywallet list --output json`,
		Args: cobra.NoArgs,
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			output, _ := cmd.Flags().GetString("output")
			records := m.Keypairs()

			views := make([]model.KeypairView, 0, len(records))
			for _, rec := range records {
				views = append(views, rec.View())
			}
			total := common.FormatSOL(m.TotalBalance())

			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(model.KeypairListResponse{Keypairs: views, TotalBalance: total})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tADDRESS\tBALANCE (SOL)\tPRIVATE KEY")
			for _, v := range views {
				private := "********"
				if v.ShowPrivate {
					private = v.PrivateKey
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.PublicKey, v.Balance, private)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s SOL\n", total)
			return nil
		}),
	}
	cmd.Flags().StringP("output", "o", "plain", "Output format: plain|json")
	return cmd
}

func newDelete(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a keypair",
		Args:  cobra.ExactArgs(1),
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			if err := m.DeleteKeypair(model.RecordID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		}),
	}
}

func newToggle(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Show or hide a keypair's private key in listings",
		Args:  cobra.ExactArgs(1),
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			return m.ToggleVisibility(model.RecordID(args[0]))
		}),
	}
}

func newQR(w *wallet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr <id>",
		Short: "Render a keypair's address as a QR code",
		Example: `  keywallet qr 0192f1c4-... --out address.png
  keywallet qr 0192f1c4-...            # prints base64 PNG`,
		Args: cobra.ExactArgs(1),
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			qr, err := m.QRCode(model.RecordID(args[0]))
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), qr.QR)
				return nil
			}

			png, err := base64.StdEncoding.DecodeString(qr.QR)
			if err != nil {
				return fmt.Errorf("failed to decode QR code: %w", err)
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "QR code for %s written to %s\n", qr.Address, out)
			return nil
		}),
	}
	cmd.Flags().String("out", "", "Write the PNG to this file instead of printing base64")
	return cmd
}
