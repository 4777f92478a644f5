package providers

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/candidlens/interview-screener/internal/scoring"
)

// Default keyword list used when the caller supplies none.
var defaultJobKeywords = []string{"streaming", "content", "media", "production", "digital", "creative"}

// sentimentSegmentLimit bounds segment size to what the classification model
// accepts in one call.
const sentimentSegmentLimit = 512

// Clarity bands over words-per-sentence: too-short sentences read as choppy,
// overly long ones lose the listener.
const (
	minIdealWordsPerSentence = 5.0
	maxIdealWordsPerSentence = 20.0
	longSentencePenaltySpan  = 15.0
	sentenceComplexityCap    = 25.0
	vocabularyRichnessScale  = 0.7
)

var (
	wordPattern     = regexp.MustCompile(`[A-Za-z0-9']+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// SentimentAnalyzer is the external text-classification model. Classify
// returns a label ("positive"/"negative") and the model's probability for
// that label.
type SentimentAnalyzer interface {
	Classify(ctx context.Context, text string) (label string, score float64, err error)
}

// ContentDetails carries the non-metric outputs of the content analysis:
// matched keywords for commentary, raw counts for reporting, and a degraded
// flag when the sentiment model was unavailable.
type ContentDetails struct {
	MatchedKeywords  []string       `json:"matched_keywords"`
	KeywordCounts    map[string]int `json:"keyword_counts"`
	SentenceCount    int            `json:"sentence_count"`
	WordCount        int            `json:"word_count"`
	UniqueWords      int            `json:"unique_words"`
	WordsPerSentence float64        `json:"words_per_sentence"`
	Degraded         bool           `json:"degraded"`
}

// ContentProvider analyzes the transcript for role relevance, confidence and
// clarity. Sentiment comes from an external model; everything else is
// computed locally.
type ContentProvider struct {
	sentiment SentimentAnalyzer
}

func NewContentProvider(sentiment SentimentAnalyzer) *ContentProvider {
	return &ContentProvider{sentiment: sentiment}
}

// Features analyzes transcript against jobKeywords and an optional job
// description. An empty transcript yields an all-zero FeatureSet; a failing
// sentiment model degrades confidence to the neutral 0.5 instead of
// propagating the error.
func (p *ContentProvider) Features(ctx context.Context, transcript string, jobKeywords []string, jobDescription string) (scoring.FeatureSet, ContentDetails) {
	fs := scoring.FeatureSet{
		scoring.KeyKeywordRelevance:   0,
		scoring.KeyConfidence:         0,
		scoring.KeyClarity:            0,
		scoring.KeySentenceComplexity: 0,
		scoring.KeyVocabularyRichness: 0,
		scoring.KeyTopicRelevance:     0,
	}
	details := ContentDetails{MatchedKeywords: []string{}, KeywordCounts: map[string]int{}}

	if strings.TrimSpace(transcript) == "" {
		return fs, details
	}

	if len(jobKeywords) == 0 {
		jobKeywords = defaultJobKeywords
	}

	lower := strings.ToLower(transcript)

	// Keyword relevance: share of configured keywords that appear at all.
	for _, kw := range jobKeywords {
		count := strings.Count(lower, strings.ToLower(kw))
		if count > 0 {
			details.MatchedKeywords = append(details.MatchedKeywords, kw)
			details.KeywordCounts[kw] = count
		}
	}
	fs[scoring.KeyKeywordRelevance] = scoring.KeywordRelevance(len(details.MatchedKeywords), len(jobKeywords))

	// Clarity from sentence structure.
	sentences := splitSentences(transcript)
	words := wordPattern.FindAllString(lower, -1)
	details.SentenceCount = len(sentences)
	details.WordCount = len(words)

	unique := map[string]struct{}{}
	for _, w := range words {
		unique[w] = struct{}{}
	}
	details.UniqueWords = len(unique)

	if details.SentenceCount > 0 {
		details.WordsPerSentence = float64(details.WordCount) / float64(details.SentenceCount)
	}
	fs[scoring.KeyClarity] = clarityFromSentenceLength(details.WordsPerSentence)

	if len(sentences) > 0 {
		total := 0
		for _, s := range sentences {
			total += len(wordPattern.FindAllString(s, -1))
		}
		mean := float64(total) / float64(len(sentences))
		fs[scoring.KeySentenceComplexity] = scoring.Clamp01(mean / sentenceComplexityCap)
	}
	if details.WordCount > 0 {
		fs[scoring.KeyVocabularyRichness] = scoring.Clamp01(
			float64(details.UniqueWords) / (float64(details.WordCount) * vocabularyRichnessScale))
	}

	// Topic relevance against the job description, when provided.
	if jobDescription != "" {
		fs[scoring.KeyTopicRelevance] = topicRelevance(lower, jobDescription)
	}

	// Confidence from the external sentiment model, averaged over segments.
	confidence, degraded := p.analyzeSentiment(ctx, sentences)
	fs[scoring.KeyConfidence] = confidence
	details.Degraded = degraded

	return fs, details
}

// analyzeSentiment classifies the transcript in sentence-aligned segments
// under the model's length limit and averages the remapped confidences.
// Any model failure degrades the whole channel to neutral.
func (p *ContentProvider) analyzeSentiment(ctx context.Context, sentences []string) (confidence float64, degraded bool) {
	if p.sentiment == nil {
		return 0.5, true
	}

	segments := groupSegments(sentences, sentimentSegmentLimit)
	if len(segments) == 0 {
		return 0.5, false
	}

	sum := 0.0
	for _, segment := range segments {
		label, score, err := p.sentiment.Classify(ctx, segment)
		if err != nil {
			return 0.5, true
		}
		sum += scoring.SentimentConfidence(label, score)
	}

	return scoring.Clamp01(sum / float64(len(segments))), false
}

// clarityFromSentenceLength scores average sentence length: the ideal range
// is [5,20] words; shorter reads as fragmented, longer decays linearly.
func clarityFromSentenceLength(wordsPerSentence float64) float64 {
	switch {
	case wordsPerSentence == 0:
		return 0
	case wordsPerSentence < minIdealWordsPerSentence:
		return 0.5
	case wordsPerSentence <= maxIdealWordsPerSentence:
		return 1.0
	default:
		penalty := (wordsPerSentence - maxIdealWordsPerSentence) / longSentencePenaltySpan
		if penalty > 1 {
			penalty = 1
		}
		return 1.0 - penalty
	}
}

// topicRelevance measures how much of the job description's dominant
// vocabulary the transcript covers, weighted by term frequency.
func topicRelevance(transcriptLower, jobDescription string) float64 {
	jobWords := contentWords(jobDescription)
	if len(jobWords) == 0 {
		return 0
	}

	jobFreq := map[string]int{}
	for _, w := range jobWords {
		jobFreq[w]++
	}
	topJob := topTerms(jobFreq, 20)

	transcriptFreq := map[string]int{}
	for _, w := range contentWords(transcriptLower) {
		transcriptFreq[w]++
	}

	matched, total := 0, 0
	for _, term := range topJob {
		total += term.count
		if tc, ok := transcriptFreq[term.word]; ok {
			if tc < term.count {
				matched += tc
			} else {
				matched += term.count
			}
		}
	}
	if total == 0 {
		return 0
	}
	return scoring.Clamp01(float64(matched) / float64(total))
}

type termCount struct {
	word  string
	count int
}

func topTerms(freq map[string]int, n int) []termCount {
	terms := make([]termCount, 0, len(freq))
	for w, c := range freq {
		terms = append(terms, termCount{w, c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].word < terms[j].word
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

// contentWords tokenizes text into lowercase words with stopwords removed.
func contentWords(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if _, stop := stopwords[w]; !stop {
			words = append(words, w)
		}
	}
	return words
}

// splitSentences breaks text on terminal punctuation, dropping empties.
func splitSentences(text string) []string {
	parts := sentencePattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// groupSegments packs consecutive sentences into segments no longer than
// limit characters. A single sentence over the limit becomes its own
// segment rather than being dropped.
func groupSegments(sentences []string, limit int) []string {
	segments := make([]string, 0, len(sentences))
	current := ""
	for _, s := range sentences {
		switch {
		case current == "":
			current = s
		case len(current)+1+len(s) <= limit:
			current += " " + s
		default:
			segments = append(segments, current)
			current = s
		}
	}
	if current != "" {
		segments = append(segments, current)
	}
	return segments
}
