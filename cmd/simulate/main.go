// Command simulate plays a YAML schedule against a virtual clock in the
// terminal. Answers are read from stdin, either as the option text or as its
// number.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"quiz-player/internal/config"
	"quiz-player/internal/domain"
	"quiz-player/internal/logger"
	"quiz-player/internal/player"
	"quiz-player/internal/player/media"
	"quiz-player/internal/schedulefile"
	"quiz-player/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	file := flag.String("file", "config/schedules/sample.yaml", "YAML schedule file")
	tick := flag.Duration("tick", player.DefaultTickInterval, "position sampling interval")
	length := flag.Duration("length", 30*time.Second, "video length")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if err := logger.Initialize(config.LoggerConfig{Level: *level, Env: "development"}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*file, *tick, *length, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Get().Error("Simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(path string, tick, length time.Duration, in io.Reader, out io.Writer) error {
	f, err := schedulefile.Load(path)
	if err != nil {
		return err
	}
	groups, err := f.QuestionGroups()
	if err != nil {
		return err
	}
	engine, err := domain.NewQuestionSyncEngine(groups)
	if err != nil {
		return err
	}

	clock := media.NewVirtualClock(media.WithDuration(length))
	session := player.NewSession(util.NewULID(), engine, clock, &consolePresenter{out: out})
	fmt.Fprintf(out, "Playing %s (%s, %d question groups)\n", f.VideoID, length, len(groups))
	clock.Play()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	var inputClosed atomic.Bool

	poller := player.NewPoller(session, tick)
	g.Go(func() error {
		return poller.Run(gctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case line, ok := <-lines:
				if !ok {
					inputClosed.Store(true)
					return nil
				}
				if line == "" {
					continue
				}
				if _, err := session.Answer(gctx, resolveAnswer(session, line)); err != nil {
					return err
				}
			}
		}
	})

	// Playback stops at the end of the video, or when input is exhausted
	// while a question holds playback paused.
	g.Go(func() error {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				switch {
				case clock.Ended():
					fmt.Fprintln(out, "End of video")
				case inputClosed.Load() && !clock.Playing():
					fmt.Fprintln(out, "No more answers")
				default:
					continue
				}
				cancel()
				return nil
			}
		}
	})

	err = g.Wait()
	if progress, perr := session.Progress(); perr == nil {
		printSummary(out, progress)
	}
	return err
}

// resolveAnswer maps an option number typed by the user to the option text.
func resolveAnswer(session *player.Session, line string) string {
	n, err := strconv.Atoi(line)
	if err != nil {
		return line
	}
	q, err := session.ActiveQuestion()
	if err != nil || q == nil || n < 1 || n > len(q.Options) {
		return line
	}
	return q.Options[n-1]
}

func printSummary(out io.Writer, progress domain.Progress) {
	fmt.Fprintln(out, "Summary:")
	for _, g := range progress.Groups {
		fmt.Fprintf(out, "  %8s  %d/%d answered\n", g.DueAt, g.Answered, g.QuestionCount)
	}
}

type consolePresenter struct {
	out io.Writer
}

func (p *consolePresenter) ShowQuestion(_ context.Context, q domain.Question) error {
	fmt.Fprintf(p.out, "\n[paused] %s\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "> ")
	return nil
}

func (p *consolePresenter) ShowFeedback(_ context.Context, q domain.Question, wrongAnswer string) error {
	fmt.Fprintf(p.out, "  %q is not right, try again\n> ", wrongAnswer)
	return nil
}

func (p *consolePresenter) Hide(context.Context) error {
	fmt.Fprintln(p.out, "[playing]")
	return nil
}
