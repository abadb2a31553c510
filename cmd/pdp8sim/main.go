// Package main is a thin, non-authoritative shell over pdp8.CPU: it
// loads an octal word list, drives Run, and prints register/history
// state. It is not the SIMH-style break/examine/deposit shell spec.md
// §1 names as an external collaborator — that stays out of scope.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"pdp8/pdp8"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pdp8sim",
		Short: "PDP-8 instruction-interpreter core, driven from the command line",
	}
	root.AddCommand(runCmd(), setCPUCmd(), showCPUCmd())
	return root
}

func runCmd() *cobra.Command {
	var (
		memSize  string
		noEAE    bool
		noIdle   bool
		history  int
		loadPath string
		start    uint16
		cfgPath  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load an octal word list and run the core until it stops",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cfgPath, memSize, noEAE, noIdle, history)
			if err != nil {
				return err
			}

			cpu, err := pdp8.NewCPU(cfg)
			if err != nil {
				return fmt.Errorf("building CPU: %w", err)
			}

			if loadPath != "" {
				if err := loadOctalFile(cpu, loadPath); err != nil {
					return err
				}
			}
			cpu.BootAt(start)

			reason := cpu.Run(context.Background())
			fmt.Printf("stopped: %s (code %d)\n", reason, int(reason))
			dumpRegisters(cpu)
			return nil
		},
	}

	cmd.Flags().StringVar(&memSize, "mem", "", "SET CPU memory size (4K..32K)")
	cmd.Flags().BoolVar(&noEAE, "no-eae", false, "SET CPU NOEAE")
	cmd.Flags().BoolVar(&noIdle, "no-idle", false, "SET CPU NOIDLE")
	cmd.Flags().IntVar(&history, "history", 0, "SET CPU HISTORY=<N>")
	cmd.Flags().StringVar(&loadPath, "load", "", "octal word-list file to load at address 0")
	cmd.Flags().Uint16Var(&start, "start", 0, "boot PC")
	cmd.Flags().StringVar(&cfgPath, "config", "", "optional YAML config file (pdp8.Config)")
	return cmd
}

func setCPUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cpu",
		Short: "Report what SET CPU <token> would configure (no persistent state in the core)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.ToUpper(args[0])
			switch token {
			case "EAE", "NOEAE", "IDLE", "NOIDLE":
				fmt.Printf("SET CPU %s recognized; pass the equivalent flag to `run`\n", token)
				return nil
			default:
				if _, err := pdp8.MemorySizeWords(token); err == nil {
					fmt.Printf("SET CPU %s recognized; pass --mem=%s to `run`\n", token, token)
					return nil
				}
				return fmt.Errorf("unrecognized SET CPU token %q", token)
			}
		},
	}
	return cmd
}

func showCPUCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-cpu",
		Short: "Print the default CPU configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			spew.Dump(pdp8.DefaultConfig())
			return nil
		},
	}
	return cmd
}

// resolveConfig loads cfgPath if given, then overlays the CLI flags
// that were explicitly passed (spec.md §6: "SET CPU" overrides stack
// on top of whatever's already configured).
func resolveConfig(cfgPath, memSize string, noEAE, noIdle bool, history int) (pdp8.Config, error) {
	cfg := pdp8.DefaultConfig()
	if cfgPath != "" {
		loaded, err := pdp8.LoadConfig(cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if memSize != "" {
		words, err := pdp8.MemorySizeWords(memSize)
		if err != nil {
			return cfg, err
		}
		cfg.MemoryWords = words
	}
	if noEAE {
		cfg.EAE = false
	}
	if noIdle {
		cfg.Idle = false
	}
	if history > 0 {
		cfg.HistoryCapacity = history
	}
	return cfg, nil
}

// loadOctalFile reads whitespace-separated octal words, one per line
// or packed, and writes them starting at address 0. This is
// deliberately not an assembler or a recognized boot-image format
// (spec.md §1 names both as external collaborators) — just enough to
// drive the core from a hand-written test program.
func loadOctalFile(cpu *pdp8.CPU, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	defer f.Close()

	var addr uint16
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, tok := range strings.Fields(scanner.Text()) {
			if strings.HasPrefix(tok, "#") {
				break
			}
			v, err := strconv.ParseUint(tok, 8, 16)
			if err != nil {
				return fmt.Errorf("loading %s: bad octal word %q: %w", path, tok, err)
			}
			cpu.Mem.Write(addr, uint16(v))
			addr++
		}
	}
	return scanner.Err()
}

func dumpRegisters(cpu *pdp8.CPU) {
	spew.Dump(cpu.Regs)
	if cpu.Hist.Capacity() > 0 {
		spew.Dump(cpu.Hist.Entries())
	}
}
