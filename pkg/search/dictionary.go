package search

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"miniecom/pkg/ranking"
)

var DefaultStopWords = []string{"with", "dan", "dengan", "yang", "and", "the", "atau", "ke", "di"}

// Dictionary - словарь поиска: бренды и стоп-слова.
//
//	brands: [asus, acer, advan]
//	stopWords: [with, dan]
type Dictionary struct {
	Brands    []string `yaml:"brands"`
	StopWords []string `yaml:"stopWords"`
}

func DefaultDictionary() Dictionary {
	return Dictionary{
		Brands:    append([]string(nil), ranking.DefaultBrands...),
		StopWords: append([]string(nil), DefaultStopWords...),
	}
}

// LoadDictionary читает YAML. Пустой путь или отсутствующий файл - словарь по умолчанию,
// пустой список в файле заменяется списком по умолчанию.
func LoadDictionary(path string) (Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultDictionary(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultDictionary(), nil
	}
	if err != nil {
		return Dictionary{}, fmt.Errorf("failed to read search dictionary: %w", err)
	}

	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return Dictionary{}, fmt.Errorf("failed to parse search dictionary: %w", err)
	}

	defaults := DefaultDictionary()
	if len(dict.Brands) == 0 {
		dict.Brands = defaults.Brands
	}
	if len(dict.StopWords) == 0 {
		dict.StopWords = defaults.StopWords
	}
	return dict, nil
}
