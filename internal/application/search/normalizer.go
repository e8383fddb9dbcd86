package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTokenRunes = 3

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopWords 法语常用虚词及本领域的高频指令词
var stopWords = map[string]struct{}{
	"je": {}, "tu": {}, "il": {}, "elle": {}, "nous": {}, "vous": {}, "ils": {}, "elles": {},
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {}, "de": {}, "du": {},
	"et": {}, "ou": {}, "mais": {}, "donc": {}, "car": {}, "pour": {}, "sur": {}, "dans": {},
	"peux": {}, "veux": {}, "cherche": {}, "trouve": {}, "recommande": {}, "suggère": {},
	"livre": {}, "film": {}, "musique": {}, "chanson": {}, "album": {}, "auteur": {}, "réalisateur": {},
	"me": {}, "te": {}, "se": {}, "qui": {}, "que": {}, "quoi": {}, "comment": {}, "ai": {}, "as": {}, "est": {},
}

// Normalize 将自由文本切分为小写关键词序列
// 去除停用词和短于 3 个字符的词；退化输入返回空序列。
func Normalize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Keywords 提取检索关键词
// Normalize 结果为空时回退为整条小写文本，保证词法检索始终有输入。
func Keywords(text string) []string {
	tokens := Normalize(text)
	if len(tokens) > 0 {
		return tokens
	}
	raw := strings.ToLower(strings.TrimSpace(text))
	if raw == "" {
		return nil
	}
	return []string{raw}
}
