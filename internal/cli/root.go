// Package cli implements the keywallet command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/keypair-wallet/internal/client"
	"github.com/AlexZinkM/keypair-wallet/internal/config"
	"github.com/AlexZinkM/keypair-wallet/internal/keystore"
	"github.com/AlexZinkM/keypair-wallet/internal/store"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

// OpenFunc builds the wallet manager from configuration.
// The returned func releases the store and the RPC client.
type OpenFunc func(cfg *config.Config) (*solana.Manager, func(), error)

// Execute runs the root command with the default backends
func Execute() {
	if err := NewRootCommand(Open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCommand assembles the command tree
func NewRootCommand(open OpenFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "keywallet",
		Short: "Local Solana keypair wallet",
		Long: `keywallet manages a local book of Solana keypairs: create and delete keypairs,
refresh their balances, send SOL, request devnet airdrops and move the book
between machines with export/import.

Configuration comes from the environment (STORE_DRIVER, STORE_PATH, SOLANA_RPC_URL, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			cfg := config.Get()
			return SetupLogger(cfg.LogLevel, cfg.LogPretty)
		},
	}

	w := &wallet{open: open}
	root.AddCommand(
		newCreate(w),
		newList(w),
		newDelete(w),
		newToggle(w),
		newQR(w),
		newRefresh(w),
		newTransfer(w),
		newAirdrop(w),
		newExport(w),
		newImport(w),
		newServe(w),
	)
	return root
}

type wallet struct {
	open OpenFunc
}

// run opens the manager for the duration of one command
func (w *wallet) run(fn func(cmd *cobra.Command, args []string, m *solana.Manager) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		m, closeFn, err := w.open(config.Get())
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(cmd, args, m)
	}
}

// Open builds the manager over the configured store and the Solana RPC endpoint
func Open(cfg *config.Config) (*solana.Manager, func(), error) {
	var password []byte
	if cfg.StoreEncrypt {
		p, err := config.PromptForPassword("Enter store password: ")
		if err != nil {
			return nil, nil, err
		}
		password = p
		// Always clear password from memory; the store keeps its own copy
		defer clear(password)
	}

	st, err := store.Open(store.Options{
		Driver:    cfg.StoreDriver,
		Path:      cfg.StorePath,
		RedisAddr: cfg.RedisAddr,
		Password:  password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	book, err := keystore.Open(st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	rpcClient, err := client.NewSolanaClient(cfg.SolanaRPCURL)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create Solana client: %w", err)
	}

	manager := solana.NewManager(book, rpcClient, solana.Options{
		ConfirmTimeout: cfg.ConfirmTimeout,
		PollInterval:   cfg.ConfirmPollInterval,
		FaucetCap:      cfg.FaucetCap,
	})

	closeFn := func() {
		rpcClient.Close()
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}

	log.Debug().
		Str("driver", cfg.StoreDriver).
		Bool("encrypted", cfg.StoreEncrypt).
		Str("rpc", rpcClient.RPCURL()).
		Int("keypairs", book.Len()).
		Msg("Wallet opened")

	return manager, closeFn, nil
}
