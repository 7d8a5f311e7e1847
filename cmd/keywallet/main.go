// @title        Keypair Wallet API
// @version      1.0
// @description  Local keypair wallet: address book, balances, SOL transfers and devnet airdrops.
// @BasePath     /
package main

import "github.com/AlexZinkM/keypair-wallet/internal/cli"

func main() {
	cli.Execute()
}
