// Package output renders wallet results on the terminal. Tables and colors
// go to stdout; it never talks to the node itself.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/eth-ipc-wallet/internal/wallet"
)

// Colors for status indicators
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// DisableColors turns off ANSI colors, used for JSON output mode.
func DisableColors() {
	color.NoColor = true
}

// RenderAccountsTerminal prints the account list as a table.
func RenderAccountsTerminal(accounts []wallet.Account) {
	fmt.Println()
	fmt.Printf("%s\n", bold(fmt.Sprintf("Accounts (%d)", len(accounts))))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("#", "Account", "Balance (ETH)", "Nonce")
	tbl.WithHeaderFormatter(headerFmt)

	for i, a := range accounts {
		balance := a.Balance
		if balance == "" {
			balance = "?"
		}
		nonce := fmt.Sprintf("%d", a.TransactionCount)
		if a.TransactionCount < 0 {
			nonce = "?"
		}
		tbl.AddRow(i, a.Hash, balance, nonce)
	}

	tbl.Print()
	fmt.Println()
}

// RenderAccountsJSON prints the account list as JSON.
func RenderAccountsJSON(accounts []wallet.Account) error {
	rows := make([]map[string]interface{}, 0, len(accounts))
	for i, a := range accounts {
		rows = append(rows, map[string]interface{}{
			"index":   i,
			"account": a.Hash,
			"balance": a.Balance,
			"nonce":   a.TransactionCount,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{"accounts": rows})
}
