package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/price-scout/internal/engine"
	"github.com/donaldgifford/price-scout/internal/render"
	"github.com/donaldgifford/price-scout/internal/session"
	"github.com/donaldgifford/price-scout/pkg/extract"
	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

const shellHelp = `Type an item name to search it. Commands:
  ?<text>           autocomplete <text>
  :currency <code>  switch currency (MYR USD JPY SGD HKD EUR GBP)
  :help             show this help
  :quit             exit
`

func shellCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive search session",
		Long: "Starts an interactive session. Each line starts a new search; results of a " +
			"search that was superseded by a newer one are discarded.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			sh := newShell(a.Engine, session.New(a.Currency()), os.Stdout, plain)
			return sh.run(cmd.Context(), os.Stdin)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable terminal styling")

	return cmd
}

// shell runs both halves of a search separately so that each can be shown
// as soon as it arrives.
type shell struct {
	eng  *engine.Engine
	sess *session.Session

	mu  sync.Mutex // guards out
	out render.Printer

	wg sync.WaitGroup
}

func newShell(eng *engine.Engine, sess *session.Session, w io.Writer, plain bool) *shell {
	return &shell{eng: eng, sess: sess, out: render.Printer{W: w, Plain: plain}}
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	defer sh.wg.Wait()

	sh.printf("%s", shellHelp)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case line == ":quit" || line == ":q":
			return nil
		case line == ":help":
			sh.printf("%s", shellHelp)
		case strings.HasPrefix(line, ":currency"):
			sh.setCurrency(strings.TrimSpace(strings.TrimPrefix(line, ":currency")))
		case strings.HasPrefix(line, "?"):
			sh.suggest(ctx, strings.TrimPrefix(line, "?"))
		default:
			sh.search(ctx, line)
		}
	}
	return scanner.Err()
}

func (sh *shell) setCurrency(code string) {
	c, err := domain.ParseCurrency(code)
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	sh.sess.SetCurrency(c)
	sh.printf("currency set to %s\n", c)
}

func (sh *shell) suggest(ctx context.Context, partial string) {
	gen := sh.sess.BeginSuggest()

	sh.wg.Go(func() {
		suggestions := sh.eng.Suggest(ctx, partial)
		if !sh.sess.ApplySuggestions(gen, suggestions) {
			return
		}
		sh.mu.Lock()
		defer sh.mu.Unlock()
		_ = sh.out.Suggestions(suggestions)
	})
}

func (sh *shell) search(ctx context.Context, query string) {
	ticket, ok := sh.sess.Begin(query, 2)
	if !ok {
		return
	}
	sh.printf("searching %q in %s...\n", ticket.Query, ticket.Currency)

	var (
		halves      sync.WaitGroup
		analysisErr error
	)

	halves.Go(func() {
		analysis, err := sh.eng.Scout().AnalyzeItem(ctx, ticket.Query, ticket.Currency)
		analysisErr = err
		if !sh.sess.ApplyAnalysis(ticket, analysis) || analysis == nil {
			return
		}
		sh.mu.Lock()
		defer sh.mu.Unlock()
		_ = sh.out.Analysis(analysis)
	})

	halves.Go(func() {
		prices := sh.eng.Scout().SearchItemPrices(ctx, ticket.Query, ticket.Currency)
		if !sh.sess.ApplyPrices(ticket, prices) {
			return
		}
		links := platform.Attach(platform.Links(ticket.Query), prices)
		sh.mu.Lock()
		defer sh.mu.Unlock()
		_ = sh.out.Prices(prices, links)
	})

	sh.wg.Go(func() {
		halves.Wait()

		snap := sh.sess.Snapshot()
		if !sh.sess.Current(ticket) || !engine.SearchFailed(snap.Analysis, snap.Prices) {
			return
		}
		if !sh.sess.ApplyError(ticket, engine.SearchFailedMessage) {
			return
		}

		hint := ""
		if extract.IsAuthFailure(analysisErr) {
			hint = engine.AuthHintMessage
		}
		sh.mu.Lock()
		defer sh.mu.Unlock()
		_ = sh.out.Error(engine.SearchFailedMessage, hint)
	})
}

func (sh *shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, _ = fmt.Fprintf(sh.out.W, format, args...)
}
