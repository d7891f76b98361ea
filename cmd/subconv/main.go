package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subconv/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "subconv",
		Short:   "subconv - proxy subscription converter",
		Long:    `subconv decodes Vmess/Shadowsocks/ShadowsocksR/Trojan/Snell/SOCKS5/HTTP(S) subscriptions and converts them into Clash, Surge, Quantumult(X), Mellow, SSD, and SS-sub configurations.`,
		Version: version.Current,
	}

	rootCmd.Flags().BoolP("version", "v", false, "version for subconv")

	rootCmd.AddCommand(
		newConvertCommand(),
		newServeCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
