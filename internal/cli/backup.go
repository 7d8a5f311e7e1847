package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/keypair-wallet/solana"
)

func newExport(w *wallet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all keypairs, private keys included, as JSON",
		Long: `Export writes every keypair as a JSON array. The output contains private keys
in cleartext: anyone who obtains it controls the funds.`,
		Args: cobra.NoArgs,
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			payload, err := m.Export()
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				_, err := cmd.OutOrStdout().Write(append(payload, '\n'))
				return err
			}
			if err := os.WriteFile(out, payload, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s. It contains cleartext private keys.\n", out)
			return nil
		}),
	}
	cmd.Flags().String("out", "", "Write to this file (mode 0600) instead of stdout")
	return cmd
}

func newImport(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge an exported JSON array into the book",
		Long: `Import merges keypairs from an export. Keypairs whose address is already in the
book are skipped. If any entry is invalid nothing is imported.`,
		Args: cobra.ExactArgs(1),
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			var (
				payload []byte
				err     error
			)
			if args[0] == "-" {
				payload, err = io.ReadAll(cmd.InOrStdin())
			} else {
				payload, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import payload: %w", err)
			}

			res, err := m.Import(payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keypairs, skipped %d already present\n", res.Merged, res.Skipped)
			return nil
		}),
	}
}
