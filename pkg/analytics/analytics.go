// Package analytics computes word frequencies over page copy for keyword analysis.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

type Analytics struct{}

// Stop words are kept as whitespace separated lists per language and merged at init.
const englishStopwords = `
a about above across after afterwards again against all almost alone along already also although always am among amongst
amount an and another any anyhow anyone anything anyway anywhere are aren't around as at back be became because become
becomes becoming been before beforehand behind being below beside besides between beyond both but by can can't cannot
could couldn't did didn't do does doesn't doing don't done down during each either else elsewhere enough entirely
especially etc even ever every everyone everything everywhere few for former formerly from further had hadn't has hasn't
have haven't having he he'd he'll he's hence her here hereafter hereby herein here's hereupon hers herself him himself
his how however i i'd i'll i'm i've if in indeed into is isn't it it's its itself just keep last latter latterly least
less let let's like likely made make many may maybe me meanwhile might mine more moreover most mostly much must mustn't
my myself neither never nevertheless next no nobody none noone nor not nothing now nowhere of off often on once one only
onto or other others otherwise our ours ourselves out over own part per perhaps please put rather re same see seem
seemed seeming seems several she she'd she'll she's should shouldn't since so some somehow someone something sometime
sometimes somewhere still such take than that that's the their theirs them themselves then thence there thereafter
thereby therefore therein there's thereupon these they they'd they'll they're they've this those through throughout thru
thus to together too toward towards under until up upon us use very via was wasn't we we'd we'll we're we've well were
weren't what whatever what's when whence whenever where whereafter whereas whereby wherein where's whereupon wherever
whether which while whither who who'd whoever who'll who's whose why with within without won't would wouldn't yet you
you'd you'll you're you've your yours yourself yourselves ain't it'll shan't that'll when's
`

const spanishStopwords = `
a al algo algunas algunos ante antes como con contra cual cuando de del desde donde durante e el ella ellas ellos en entre
era es esa esas ese eso esos esta estas este esto estos está están fue fueron ha han hasta hay la las le les lo los más
me mi mis muy nada ni no nos nosotros o os otra otras otro otros para pero poco por porque que quien se sea ser si sin
sobre somos son su sus también tanto te tiene tienen todo todos tu tus un una unas uno unos usted ustedes y ya
`

const catalanStopwords = `
als amb aquest aquesta aquestes aquests cap com d dels des després doncs el els em en entre era és fins hi i jo la les li
ma més meu meva molt na ni no nosaltres o on pel per perquè però qual quan que qui sa se seu seva si sobre són també tot
tots un una unes uns us vosaltres
`

// webNoiseWords are UI words that dominate navigation-heavy pages.
const webNoiseWords = `
click clickable clicked clicking button link menu redirected redirect redirecting page pages website site home homepage
search searching searched loading loaded load loads cookies aceptar acceptar leer más llegir més inicio inici
`

var commonWords = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, list := range []string{englishStopwords, spanishStopwords, catalanStopwords, webNoiseWords} {
		for _, w := range strings.Fields(list) {
			m[w] = struct{}{}
		}
	}
	return m
}()

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// Tokenize lowercases text and splits it into words with edge punctuation removed.
// Letters from any script are kept, so accented Spanish and Catalan words survive.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := fields[:0]
	for _, w := range fields {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// WordFrequency counts non-stopword tokens. Single characters and pure numbers are skipped.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range Tokenize(text) {
		if _, exists := commonWords[word]; exists || len([]rune(word)) < 2 || isNumber(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

type wordCount struct {
	Word  string
	Count int
}

// ranked sorts counts descending, breaking ties alphabetically so output is deterministic.
func ranked(frequencies map[string]int, n int) []wordCount {
	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// TopNWords returns the n most frequent words of text.
func (a *Analytics) TopNWords(text string, n int) []string {
	counts := ranked(a.WordFrequency(text), n)
	topN := make([]string, len(counts))
	for i, c := range counts {
		topN[i] = c.Word
	}
	return topN
}

// TopKeywords returns the top n keywords as "word:count" strings.
func TopKeywords(wordCounts map[string]int, n int) []string {
	counts := ranked(wordCounts, n)
	keywords := make([]string, len(counts))
	for i, c := range counts {
		keywords[i] = fmt.Sprintf("%s:%d", c.Word, c.Count)
	}
	return keywords
}
