// Package file loads question banks from YAML (or JSON) files on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"aitekka-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

var extensions = []string{".yaml", ".yml", ".json"}

// BankLoader reads {dir}/{bankID}.yaml (or .yml/.json).
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) || bankID == "." || bankID == ".." {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	for _, ext := range extensions {
		bank, err := ReadBank(filepath.Join(l.dir, bankID+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return bank, err
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// ReadBank decodes a single bank file. YAML is a superset of JSON, so both
// formats go through the YAML decoder.
func ReadBank(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Bank{}, err
	}
	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if bank.ID == "" {
		bank.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return bank, nil
}

// WriteBank encodes bank as YAML at path.
func WriteBank(path string, bank domain.Bank) error {
	data, err := yaml.Marshal(bank)
	if err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
