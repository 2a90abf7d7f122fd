package cmd

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/boardlens/boardlens/internal/core/alias"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage the Chinese-to-English alias dictionary",
	Long: `Manage the alias dictionary consulted before any web search.

Each entry maps a Chinese name to one or more English names separated by
"|", tried in order.`,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <中文名> <english name>",
	Short: "Register an alias",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cnName, enName := args[0], args[1]
		if !hasAlphanumeric(enName) {
			return fmt.Errorf("english name %q must contain a letter or digit", enName)
		}

		dict, err := aliasDictionary()
		if err != nil {
			return err
		}
		if err := dict.Add(cnName, enName); err != nil {
			if errors.Is(err, alias.ErrExists) {
				return fmt.Errorf("alias for %q already exists; remove it first", cnName)
			}
			return err
		}

		fmt.Printf("registered %s -> %s\n", cnName, enName)
		return nil
	},
}

var aliasRemoveCmd = &cobra.Command{
	Use:   "remove <中文名>",
	Short: "Remove an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := aliasDictionary()
		if err != nil {
			return err
		}

		removed, err := dict.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no alias registered for %q", args[0])
		}

		fmt.Printf("removed alias for %s\n", args[0])
		return nil
	},
}

var aliasClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := aliasDictionary()
		if err != nil {
			return err
		}
		if err := dict.Clear(); err != nil {
			return err
		}

		fmt.Println("alias dictionary cleared")
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := aliasDictionary()
		if err != nil {
			return err
		}

		entries, err := dict.Load()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no aliases registered")
			return nil
		}

		keys, err := dict.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Printf("%s -> %s\n", key, entries[key])
		}
		return nil
	},
}

func aliasDictionary() (*alias.Dictionary, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return &alias.Dictionary{Path: cfg.Alias.Path}, nil
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(aliasCmd)
	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
	aliasCmd.AddCommand(aliasClearCmd)
	aliasCmd.AddCommand(aliasListCmd)
}
