// Command tokenctl загружает проданные ключи в реестр sold tokens.
//
// Ключи передаются аргументами или файлом (по одному в строке, строки
// с # игнорируются). Ключи нормализуются и проверяются до записи.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/iudanet/activator/internal/license"
	"github.com/iudanet/activator/internal/models"
	"github.com/iudanet/activator/internal/server/storage"
	"github.com/iudanet/activator/internal/server/storage/sqlite"
	"github.com/iudanet/activator/internal/validation"
)

// report итог загрузки ключей
type report struct {
	Added      int
	Duplicates []string
	Invalid    []string
}

func main() {
	dbPath := flag.String("db", "activator.db", "path to SQLite database")
	file := flag.String("file", "", "file with one key per line (- for stdin)")
	code := flag.String("code", "", "batch label stored with every key")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	keys := flag.Args()
	if *file != "" {
		fromFile, err := readKeysFile(*file)
		if err != nil {
			logger.Error("failed to read keys", slog.Any("error", err))
			os.Exit(1)
		}
		keys = append(keys, fromFile...)
	}

	if len(keys) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tokenctl [-db path] [-code label] [-file keys.txt] [KEY...]")
		os.Exit(2)
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	rep, err := provision(ctx, store, keys, *code, time.Now().UTC())
	if err != nil {
		logger.Error("provisioning failed", slog.Any("error", err), slog.Int("added", rep.Added))
		os.Exit(1)
	}

	for _, key := range rep.Duplicates {
		logger.Warn("key already in ledger", slog.String("key", key))
	}
	for _, key := range rep.Invalid {
		logger.Warn("invalid key skipped", slog.String("key", key))
	}

	logger.Info("keys provisioned",
		slog.Int("added", rep.Added),
		slog.Int("duplicates", len(rep.Duplicates)),
		slog.Int("invalid", len(rep.Invalid)))
}

// provision сохраняет ключи в реестр. Дубликаты и некорректные ключи
// пропускаются и попадают в отчет, любая другая ошибка прерывает загрузку.
func provision(ctx context.Context, tokens storage.TokenStorage, keys []string, code string, now time.Time) (report, error) {
	var rep report

	for _, raw := range keys {
		key := license.NormalizeKey(raw)
		if err := validation.ValidateTokenKey(key); err != nil {
			rep.Invalid = append(rep.Invalid, raw)
			continue
		}

		err := tokens.SaveSoldToken(ctx, &models.SoldToken{
			Key:         key,
			Code:        code,
			Sold:        true,
			GeneratedAt: now,
		})
		switch {
		case err == nil:
			rep.Added++
		case errors.Is(err, storage.ErrTokenAlreadyExists):
			rep.Duplicates = append(rep.Duplicates, key)
		default:
			return rep, fmt.Errorf("failed to save key %s: %w", key, err)
		}
	}

	return rep, nil
}

func readKeysFile(path string) ([]string, error) {
	if path == "-" {
		return parseKeys(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parseKeys(f)
}

// parseKeys читает ключи по одному в строке, пропуская пустые строки и комментарии
func parseKeys(r io.Reader) ([]string, error) {
	var keys []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return keys, nil
}
