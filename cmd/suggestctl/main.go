package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"stylesuggest/client"
	"stylesuggest/config"
	"stylesuggest/pkg/logger"
	"stylesuggest/profile"
	"stylesuggest/store"
)

const usage = `usage: suggestctl [flags] <command> [args]

commands:
  list                             show suggestions
  add <name> <description>         create a suggestion
  edit <id> <name> <description>   update a suggestion
  delete <id>                      remove a suggestion
  profile                          show the profile
  profile <name> <email>           update the profile
  style [preference]               show or set the style preference
`

func main() {
	configPath := flag.String("config", "suggestctl.yaml", "Path to the YAML client config")
	verbose := flag.Bool("v", false, "Log client activity to stdout")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logger.Init("debug")
		defer logger.Sync()
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.ClientConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command, see -h")
	}

	kv := store.NewFileKV(cfg.SnapshotPath)

	switch args[0] {
	case "profile":
		return runProfile(ctx, profile.NewService(kv), args[1:], out)
	case "style":
		return runStyle(ctx, profile.NewService(kv), args[1:], out)
	}

	c, err := client.New(client.Mode(cfg.Mode), kv,
		client.WithBaseURL(cfg.BaseURL),
		client.WithToken(cfg.Token),
	)
	if err != nil {
		return err
	}
	if _, err := c.Load(ctx); err != nil {
		return err
	}
	if c.Offline() {
		fmt.Fprintln(out, "(offline: showing the local copy)")
	}

	switch args[0] {
	case "list":
	case "add":
		if len(args) != 3 {
			return errors.New("add needs <name> <description>")
		}
		if _, err := c.Save(ctx, "", args[1], args[2]); err != nil {
			return err
		}
	case "edit":
		if len(args) != 4 {
			return errors.New("edit needs <id> <name> <description>")
		}
		if _, err := c.Save(ctx, args[1], args[2], args[3]); err != nil {
			return err
		}
	case "delete":
		if len(args) != 2 {
			return errors.New("delete needs <id>")
		}
		if err := c.Delete(ctx, args[1]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, s := range c.Suggestions() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.Description)
	}
	return tw.Flush()
}

func runProfile(ctx context.Context, svc *profile.Service, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
	case 2:
		if err := svc.Save(ctx, profile.Profile{Name: args[0], Email: args[1]}); err != nil {
			return err
		}
	default:
		return errors.New("profile takes no arguments or <name> <email>")
	}
	p, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Name:  %s\nEmail: %s\n", p.Name, p.Email)
	return nil
}

func runStyle(ctx context.Context, svc *profile.Service, args []string, out io.Writer) error {
	if len(args) > 0 {
		if err := svc.SaveStylePreference(ctx, args[0]); err != nil {
			return err
		}
	}
	pref, err := svc.StylePreference(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Style preference: %s\n", pref)
	return nil
}
