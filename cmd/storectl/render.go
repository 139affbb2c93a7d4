package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"

	"github.com/splstore/splstore/internal/client"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

func renderPrice(price float64) string {
	return boxStyle.Render(
		headerStyle.Render("Unit price") + "\n" +
			valueStyle.Render(fmt.Sprintf("%g SOL", price)))
}

func renderBalances(b *client.Balances) string {
	row := func(label string, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	sol := func(lamports uint64) string {
		return fmt.Sprintf("%.9f SOL", float64(lamports)/float64(solana.LAMPORTS_PER_SOL))
	}
	return boxStyle.Render(
		headerStyle.Render("Balances") + "\n" +
			row("store", sol(b.StoreLamports)) + "\n" +
			row("store tokens", fmt.Sprintf("%d", b.StoreTokens)) + "\n" +
			row("client", sol(b.ClientLamports)) + "\n" +
			row("client tokens", fmt.Sprintf("%d", b.ClientTokens)))
}
