package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"github.com/magscene/magsav/internal/console"
	"github.com/magscene/magsav/internal/csvimport"
	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/httpclients/backoffice"
	"github.com/magscene/magsav/pkg/config"
	"github.com/magscene/magsav/pkg/logger"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "erreur : %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envPath    string
		kind       string
		importType string
		dryRun     bool
	)

	flagSet := pflag.NewFlagSet("magsav-console", pflag.ContinueOnError)
	flagSet.StringVar(&envPath, "env", ".env", "fichier d'environnement")
	flagSet.StringVarP(&kind, "kind", "k", string(entity.KindEquipment), "page affichée au démarrage")
	flagSet.StringVar(&importType, "import", "", "importe un fichier CSV du type donné puis quitte")
	flagSet.BoolVar(&dryRun, "dry-run", false, "avec --import, vérifie le fichier sans l'envoyer")
	flagSet.BoolP("help", "h", false, "affiche l'aide")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}

		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := config.NewConsole(envPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	_, err = logger.NewWithWriter(logFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := backoffice.NewClient(cfg)

	if importType != "" {
		if flagSet.NArg() != 1 {
			return errors.New("--import attend exactement un fichier")
		}

		return runImport(ctx, client, csvimport.Type(importType), flagSet.Arg(0), dryRun)
	}

	if flagSet.NArg() > 0 {
		return fmt.Errorf("argument inattendu : %s", flagSet.Arg(0))
	}

	start := entity.Kind(kind)
	if !start.IsValid() {
		return fmt.Errorf("%w: %s", entity.ErrUnknownKind, kind)
	}

	model := console.New(ctx, client, console.NewPages(client), start)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()

	return err
}

// runImport checks the file locally, shows a preview and uploads it.
func runImport(ctx context.Context, client *backoffice.Client, t csvimport.Type, path string, dryRun bool) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %s", csvimport.ErrUnknownType, t)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	err = csvimport.CheckUpload(info.Name(), info.Size())
	if err != nil {
		return err
	}

	table, err := csvimport.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	err = csvimport.Validate(table, t)
	if err != nil {
		return err
	}

	printPreview(os.Stdout, table)

	if dryRun {
		fmt.Println(okStyle.Render(fmt.Sprintf("%d lignes prêtes à importer", len(table.Rows))))
		return nil
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}

	result, err := client.ImportCSV(ctx, string(t), info.Name(), f)
	if err != nil {
		return err
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("%d/%d lignes importées", result.Created, result.Total)))

	for _, e := range result.Errors {
		fmt.Println(warnStyle.Render(fmt.Sprintf("ligne %d : %s", e.Row, e.Message)))
	}

	return nil
}

func printPreview(w io.Writer, t csvimport.Table) {
	preview := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(t.Headers...).
		Rows(t.Preview()...)

	fmt.Fprintln(w, preview.String())

	if rest := len(t.Rows) - len(t.Preview()); rest > 0 {
		fmt.Fprintf(w, "… et %d autres lignes\n", rest)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	types := make([]string, len(csvimport.Types))
	for i, t := range csvimport.Types {
		types[i] = string(t)
	}

	kinds := make([]string, len(entity.Kinds))
	for i, k := range entity.Kinds {
		kinds[i] = string(k)
	}

	slices.Sort(kinds)

	fmt.Fprintf(os.Stderr, `Console de gestion MAGSAV.

Usage:
  magsav-console [--kind PAGE]
  magsav-console --import TYPE [--dry-run] FICHIER.csv

Pages : %s
Types d'import : %s

Options:
%s`, strings.Join(kinds, ", "), strings.Join(types, ", "), flagSet.FlagUsages())
}
