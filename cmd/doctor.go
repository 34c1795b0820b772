package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probelabs/deepscout/internal/config"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check environment, credentials and configuration health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("deepscout doctor")
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (NOT FOUND, using defaults + environment)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Println()
	fmt.Println("  Providers:")
	checkKey("OpenAI", cfg.Providers.OpenAI.APIKey)
	checkKey("Anthropic", cfg.Providers.Anthropic.APIKey)

	fmt.Println()
	fmt.Println("  Search:")
	checkKey("Tavily", cfg.Search.Tavily.APIKey)
	checkKey("Brave", cfg.Search.Brave.APIKey)
	fmt.Printf("    %-12s always available (keyless)\n", "DuckDuckGo:")

	fmt.Println()
	fmt.Println("  Presets:")
	available := cfg.AvailablePresets()
	for _, id := range available {
		fmt.Printf("    %-16s runnable\n", id)
	}
	if len(available) == 1 && available[0] == "offline" {
		fmt.Println("    (no API keys found: only the offline sample preset is runnable)")
	}

	fmt.Println()
	historyPath := cfg.History.Path
	if historyPath == "" {
		historyPath = config.DefaultHistoryPath()
	}
	fmt.Printf("  History:  %s", config.ExpandHome(historyPath))
	if cfg.History.Disabled {
		fmt.Println(" (disabled)")
	} else {
		fmt.Println()
	}
	fmt.Printf("  Exports:  %s\n", cfg.Export.Dir)

	fmt.Println()
	fmt.Println("Doctor check complete.")
}

func checkKey(name, apiKey string) {
	if apiKey == "" {
		fmt.Printf("    %-12s (not configured)\n", name+":")
		return
	}
	masked := apiKey
	if len(apiKey) > 8 {
		masked = apiKey[:4] + strings.Repeat("*", len(apiKey)-8) + apiKey[len(apiKey)-4:]
	} else {
		masked = strings.Repeat("*", len(apiKey))
	}
	fmt.Printf("    %-12s %s\n", name+":", masked)
}
