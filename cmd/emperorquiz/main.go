package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dynastygames/emperorquiz/internal/admin"
	"github.com/dynastygames/emperorquiz/internal/config"
	"github.com/dynastygames/emperorquiz/internal/database"
	"github.com/dynastygames/emperorquiz/internal/game"
	"github.com/dynastygames/emperorquiz/internal/migrations"
	"github.com/dynastygames/emperorquiz/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Game core ---
	blobs := storage.NewSQLiteBlobs(ctx, db)
	store := game.NewEmperorStore(blobs, logger)
	if err := store.Init(); err != nil {
		logger.Warn("store initialized degraded", "err", err)
	}
	ledger := game.NewScoreLedger(logger)
	history := game.NewHintHistory()
	engine := game.NewEngine(store, ledger, history, blobs, logger)

	auth := admin.NewAuthenticator(cfg.AdminPasswordHash, logger)
	editor := admin.NewService(store, auth, engine, logger)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-gctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

	g.Go(func() error {
		return play(gctx, engine, &adminCLI{auth: auth, editor: editor}, lines, stdout)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func play(ctx context.Context, engine *game.Engine, cli *adminCLI, lines <-chan string, out io.Writer) error {
	fmt.Fprintln(out, "Emperor Quiz — guess the emperor from up to ten hints.")
	if engine.InProgress() {
		fmt.Fprintln(out, "Resuming your round in progress.")
		fmt.Fprintf(out, "Hint: %s\n", engine.CurrentHint())
	} else {
		fmt.Fprintln(out, `Type "start" to begin, "help" for commands.`)
	}

	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
			if !ok {
				return nil
			}
		}

		input := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(input, "admin "); ok {
			cli.handle(ctx, strings.Fields(rest), out)
			continue
		}
		switch strings.ToLower(input) {
		case "":
		case "help":
			fmt.Fprintln(out, "commands: start, hints, score, stats, reset, menu, quit, admin <...> — anything else is a guess")
		case "quit", "exit":
			return nil
		case "start":
			info, err := engine.StartNewRound()
			if err != nil {
				fmt.Fprintf(out, "cannot start: %v\n", err)
				continue
			}
			printRound(out, info)
		case "hints":
			if !engine.CanReviewHints() {
				fmt.Fprintln(out, "nothing to review yet")
				continue
			}
			for _, dh := range engine.DisplayedHints() {
				fmt.Fprintf(out, "%2d. [%s] %s\n", dh.DisplayIndex, dh.Hint.Difficulty, dh.Hint.Content)
			}
		case "score":
			round, total := engine.Scores()
			fmt.Fprintf(out, "round score %d, total %d\n", round, total)
		case "stats":
			info := engine.HintDifficultyInfo()
			fmt.Fprintf(out, "hints this emperor: %d hard, %d medium, %d easy\n", info.Hard, info.Medium, info.Easy)
		case "reset", "menu":
			if err := engine.ResetGame(); err != nil {
				fmt.Fprintf(out, "reset failed: %v\n", err)
				continue
			}
			fmt.Fprintln(out, `game reset — type "start" to play again`)
		default:
			result, err := engine.SubmitGuess(input)
			if err != nil {
				fmt.Fprintf(out, "guess rejected: %v\n", err)
				continue
			}
			printResult(out, result)
		}
	}
}

// adminCLI holds the editing session for the admin subcommands.
type adminCLI struct {
	auth   *admin.Authenticator
	editor *admin.Service
	token  string
}

func (c *adminCLI) handle(ctx context.Context, args []string, out io.Writer) {
	if len(args) == 0 {
		fmt.Fprintln(out, "admin commands: login <password>, logout, list, delete <id>, stats")
		return
	}
	switch args[0] {
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: admin login <password>")
			return
		}
		sess, err := c.auth.Login(ctx, args[1])
		if err != nil {
			fmt.Fprintf(out, "login failed: %v\n", err)
			return
		}
		c.token = sess.Token
		fmt.Fprintf(out, "admin session open until %s\n", sess.ExpiresAt.Format("15:04 MST"))
	case "logout":
		c.auth.Logout(c.token)
		c.token = ""
		fmt.Fprintln(out, "admin session closed")
	case "list":
		summaries, err := c.editor.Summaries(c.token)
		if err != nil {
			fmt.Fprintf(out, "list failed: %v\n", err)
			return
		}
		for _, s := range summaries {
			fmt.Fprintf(out, "%-16s %s (%s), %d hints\n", s.ID, s.Name, s.Dynasty, s.HintCount)
		}
	case "delete":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: admin delete <id>")
			return
		}
		if err := c.editor.Delete(c.token, args[1]); err != nil {
			fmt.Fprintf(out, "delete failed: %v\n", err)
			return
		}
		fmt.Fprintf(out, "deleted %s\n", args[1])
	case "stats":
		stats, err := c.editor.Stats(c.token)
		if err != nil {
			fmt.Fprintf(out, "stats failed: %v\n", err)
			return
		}
		fmt.Fprintf(out, "%d emperors (%d valid), %d hints total\n",
			stats.TotalEmperors, stats.ValidEmperors, stats.TotalHints)
	default:
		fmt.Fprintf(out, "unknown admin command %q\n", args[0])
	}
}

func printRound(out io.Writer, info game.RoundInfo) {
	if info.RoundComplete {
		fmt.Fprintf(out, "Round complete! Total score: %d\n", info.TotalScore)
		return
	}
	fmt.Fprintf(out, "Emperor %d of %d (%s, %d–%d)\n",
		info.EmperorIndex+1, info.MaxEmperors, info.Emperor.Dynasty, info.Emperor.ReignStart, info.Emperor.ReignEnd)
	fmt.Fprintf(out, "Hint 1/%d: %s\n", info.TotalHints, info.Hint)
}

func printResult(out io.Writer, r game.GuessResult) {
	switch {
	case r.IsCorrect:
		fmt.Fprintf(out, "Correct! %s earned you %d points.\n", r.CompletedEmperor.Name, r.ScoreChange)
	case r.FailedEmperor != nil:
		fmt.Fprintf(out, "Out of hints — it was %s. No points banked.\n", r.FailedEmperor.Name)
	default:
		fmt.Fprintf(out, "Wrong (%d). Next hint: %s\n", r.ScoreChange, r.NextHint)
		return
	}
	if r.RoundComplete {
		fmt.Fprintln(out, `Round complete! Type "score" for totals, "start" for a new round.`)
		return
	}
	if r.Next != nil {
		printRound(out, *r.Next)
	}
}
