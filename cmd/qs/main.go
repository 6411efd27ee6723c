// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command qs decodes and encodes bracket-notation query strings from the
// command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rivaas.dev/qs"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// globals holds flags shared by every command and the codec built from them.
type globals struct {
	verbose  bool
	maxIndex int
	maxLen   int

	logger *slog.Logger
	codec  *qs.Codec
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		w := colorprofile.NewWriter(os.Stderr, os.Environ())
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "qs",
		Short: "Decode and encode bracket-notation query strings",
		Long: `qs converts between flat query strings such as
filters[status]=active&items[0][id]=7 and nested JSON-like trees.

Scalar values are typed on decode: numbers, booleans, null and undefined
are recognized, and everything else stays a string. Encoding a null or
undefined leaf removes the parameter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd.ErrOrStderr())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log dropped parameters to stderr")
	pf.IntVar(&g.maxIndex, "max-index", qs.DefaultMaxArrayIndex, "Exclusive upper bound for array indices")
	pf.IntVar(&g.maxLen, "max-len", qs.DefaultMaxScalarLen, "Byte length above which values are not typed")

	rootCmd.AddCommand(
		decodeCmd(g),
		encodeCmd(g),
		inferCmd(g),
		versionCmd(),
	)

	return rootCmd
}

func (g *globals) init(stderr io.Writer) error {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	g.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	codec, err := qs.New(
		qs.WithMaxArrayIndex(g.maxIndex),
		qs.WithMaxScalarLen(g.maxLen),
		qs.WithLogger(g.logger),
	)
	if err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	g.codec = codec

	return nil
}

// errInteractive is returned when input would be read from a terminal.
var errInteractive = fmt.Errorf("no input given and stdin is a terminal")

// readAll reads r unless it is an interactive terminal, which would block.
func readAll(r io.Reader) ([]byte, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errInteractive
	}

	return io.ReadAll(r)
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, version)
				return
			}

			fmt.Fprintln(w, figure.NewFigure("qs", "", false).String())
			fmt.Fprintln(w, labelStyle.Render("Version:")+valueStyle.Render(version))
			fmt.Fprintln(w, labelStyle.Render("Commit:")+valueStyle.Render(commit))
			fmt.Fprintln(w, labelStyle.Render("Go version:")+valueStyle.Render(runtime.Version()))
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}
