package cvevaluation

import (
	"bytes"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownSkills навыки, которые ищутся в тексте резюме
var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "React", "Vue", "Node.js",
	"SQL", "PostgreSQL", "MongoDB", "Redis", "Kafka", "Docker", "Kubernetes",
	"AWS", "GCP", "Terraform", "Linux", "Figma", "Excel", "Salesforce",
	"Agile", "Scrum", "Machine Learning",
}

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s\-()]{8,}\d`)
	separatorRe = regexp.MustCompile(`[_\-.\s]+`)
	wordSepRe   = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	noiseWords  = map[string]bool{"cv": true, "resume": true, "резюме": true, "final": true, "new": true}
)

const (
	binarySampleSize = 1000
	binaryThreshold  = 0.3
)

type parsedContent struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Skills    []string
}

// parseCV данные извлекаются из текстового содержимого, имя при отсутствии в тексте берется из названия файла.
// Бинарные документы (pdf, doc) не разбираются.
func parseCV(fileName string, body []byte) parsedContent {
	result := parsedContent{Skills: []string{}}
	if !isBinary(body) {
		text := string(body)
		result.Email = emailRe.FindString(text)
		result.Phone = findPhone(text)
		result.FirstName, result.LastName = nameFromText(text)
		result.Skills = findSkills(text)
	}
	if result.FirstName == "" {
		result.FirstName, result.LastName = nameFromFileName(fileName)
	}
	return result
}

// title cases.Caser не потокобезопасен
func title(word string) string {
	return cases.Title(language.Und).String(word)
}

func nameFromText(text string) (firstName, lastName string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 3 {
			return "", ""
		}
		for _, word := range words {
			for _, r := range word {
				if !unicode.IsLetter(r) && r != '-' && r != '\'' {
					return "", ""
				}
			}
		}
		return title(words[0]), title(strings.Join(words[1:], " "))
	}
	return "", ""
}

func nameFromFileName(fileName string) (firstName, lastName string) {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	words := []string{}
	for _, word := range separatorRe.Split(base, -1) {
		if word == "" || noiseWords[strings.ToLower(word)] || strings.IndexFunc(word, unicode.IsDigit) >= 0 {
			continue
		}
		words = append(words, title(word))
	}
	switch len(words) {
	case 0:
		return "", ""
	case 1:
		return words[0], ""
	}
	return words[0], strings.Join(words[1:], " ")
}

// findPhone первое совпадение, похожее на номер телефона (не меньше 10 цифр)
func findPhone(text string) string {
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 10 {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

func findSkills(text string) []string {
	result := []string{}
	lower := " " + strings.ToLower(wordSepRe.ReplaceAllString(text, " ")) + " "
	for _, skill := range knownSkills {
		needle := " " + strings.ToLower(wordSepRe.ReplaceAllString(skill, " ")) + " "
		if strings.Contains(lower, needle) {
			result = append(result, skill)
		}
	}
	return result
}

func isBinary(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	if bytes.HasPrefix(body, []byte("%PDF-")) {
		return true
	}
	sample := body
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	nonPrintable := 0
	total := 0
	for len(sample) > 0 {
		r, size := utf8.DecodeRune(sample)
		sample = sample[size:]
		total++
		if r == utf8.RuneError || (!unicode.IsPrint(r) && !unicode.IsSpace(r)) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(total) > binaryThreshold
}
