// Package report は集計結果を text / json / yaml で出力する
package report

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/wrklg/jira-wrklg/internal/cmdutil"
	"github.com/wrklg/jira-wrklg/internal/config"
	"github.com/wrklg/jira-wrklg/internal/summary"
	"github.com/wrklg/jira-wrklg/internal/ui"
	"github.com/wrklg/jira-wrklg/internal/worklog"
)

// Renderer は課題ごとの集計結果を受け取って出力する
type Renderer interface {
	// Issue は1課題分を出力する（text は即時、json / yaml は Flush まで保持）
	Issue(r worklog.IssueReport) error
	// Flush は保持している結果を書き出す
	Flush() error
}

// Options は出力オプション
type Options struct {
	// JQ は json 出力に適用する jq フィルタ
	JQ string
	// SummarySentences が正なら、期間内のワークログコメントの要約を text 出力に付ける
	SummarySentences int
}

// New は出力フォーマットに応じた Renderer を返す
func New(format string, w io.Writer, opts Options) (Renderer, error) {
	switch format {
	case "", config.OutputText:
		return &textRenderer{w: w, summarySentences: opts.SummarySentences}, nil
	case config.OutputJSON:
		return &jsonRenderer{w: w, jq: opts.JQ, reports: []worklog.IssueReport{}}, nil
	case config.OutputYAML:
		return &yamlRenderer{w: w, reports: []worklog.IssueReport{}}, nil
	default:
		return nil, errors.Errorf("unknown output format %q (text, json, yaml)", format)
	}
}

type textRenderer struct {
	w                io.Writer
	summarySentences int
}

func (t *textRenderer) Issue(r worklog.IssueReport) error {
	w := t.w
	fmt.Fprintf(w, "%s\n", ui.BoldBlue(r.Issue+":"))

	for _, l := range r.Lines {
		switch l.Kind {
		case worklog.LineNew:
			fmt.Fprintf(w, "\t%s: %s (created %s)\n",
				l.Author, ui.Cyan(l.Duration), l.Created.Format(worklog.DisplayLayout))
		case worklog.LineChanged:
			fmt.Fprintf(w, "\t%s: %s (created: %s | updated: %s)\n",
				l.Author, ui.Red(l.Duration+" (changed)"),
				l.Created.Format(worklog.DisplayLayout), l.Updated.Format(worklog.DisplayLayout))
		}
	}

	if !r.HasNewTime() {
		_, err := fmt.Fprintf(w, "\t%s\n", ui.Cyan("No new time"))
		return err
	}

	fmt.Fprintf(w, "\n\t%s\n", ui.Cyan("Total:"))
	for _, total := range r.Totals {
		fmt.Fprintf(w, "\t\t%s: %s\n", total.Author, total.Duration)
	}

	if t.summarySentences > 0 {
		text, err := summary.SummarizeAll(r.NewComments(), t.summarySentences)
		if err != nil {
			return errors.Wrapf(err, "summarize %s", r.Issue)
		}
		if text != "" {
			fmt.Fprintf(w, "\n\t%s %s\n", ui.Bold("Summary:"), text)
		}
	}
	return nil
}

func (t *textRenderer) Flush() error {
	return nil
}

type jsonRenderer struct {
	w       io.Writer
	jq      string
	reports []worklog.IssueReport
}

func (j *jsonRenderer) Issue(r worklog.IssueReport) error {
	j.reports = append(j.reports, r)
	return nil
}

func (j *jsonRenderer) Flush() error {
	return cmdutil.OutputJSON(j.w, j.reports, cmdutil.JSONOutputOptions{
		JQFilter: j.jq,
		Pretty:   true,
	})
}

type yamlRenderer struct {
	w       io.Writer
	reports []worklog.IssueReport
}

func (y *yamlRenderer) Issue(r worklog.IssueReport) error {
	y.reports = append(y.reports, r)
	return nil
}

func (y *yamlRenderer) Flush() error {
	return cmdutil.OutputYAML(y.w, y.reports)
}
