package summary

import (
	"fmt"
	"strings"

	"github.com/ramenjuniti/lexrankmmr"
)

// maxCharacters はlexrankmmrに渡す最大文字数
const maxCharacters = 100000

// Summarize summarises the given text into `sentenceCount` sentences.
func Summarize(text string, sentenceCount int) (string, error) {
	if strings.TrimSpace(text) == "" || sentenceCount <= 0 {
		return "", nil
	}

	// LexRankMMRは空の文（TF-IDFベクトルがゼロ）に遭遇するとエラーになるため、
	// 事前に空文を除去して渡す
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", nil
	}
	// 要約するまでもない
	if len(sentences) <= sentenceCount {
		return strings.Join(sentences, ". ") + ".", nil
	}

	data, err := lexrankmmr.New(
		lexrankmmr.MaxLines(sentenceCount),
		lexrankmmr.MaxCharacters(maxCharacters),
	)
	if err != nil {
		return "", fmt.Errorf("failed to initialize lexrankmmr: %w", err)
	}

	// LexRankMMRは「。」で文を区切るため、その形に整えて渡す
	if err := data.Summarize(strings.Join(sentences, "。") + "。"); err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	var summaries []string
	for _, score := range data.LineLimitedSummary {
		s := strings.TrimSpace(score.Sentence)
		if s != "" {
			summaries = append(summaries, strings.TrimSuffix(s, "。"))
		}
	}
	if len(summaries) == 0 {
		return "", nil
	}

	return strings.Join(summaries, ". ") + ".", nil
}

// SummarizeAll は複数のコメントをまとめて要約する
func SummarizeAll(texts []string, sentenceCount int) (string, error) {
	return Summarize(strings.Join(texts, "\n"), sentenceCount)
}

// splitSentences は改行や終止符で文に分割し、空文を取り除く
func splitSentences(text string) []string {
	replacer := strings.NewReplacer(
		"\r\n", "\n",
		"\r", "\n",
		"。", "\n",
		"！", "\n",
		"？", "\n",
		". ", "\n",
		"!", "\n",
		"?", "\n",
	)
	text = replacer.Replace(text)

	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "."))
		if line != "" {
			sentences = append(sentences, line)
		}
	}
	return sentences
}
