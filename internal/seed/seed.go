// Package seed loads the chart of accounts from a YAML file into the account store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/middleware"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SystemUserID is recorded as creator of seeded rows.
const SystemUserID = "system"

// AccountSeed is one account entry of the seed file.
type AccountSeed struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// ChartOfAccountsFile is the layout of the seed file.
type ChartOfAccountsFile struct {
	Accounts []AccountSeed `yaml:"accounts"`
}

// Result counts what a seed run changed.
type Result struct {
	Created int
	Updated int
}

// LoadChartOfAccounts reads and validates a seed file.
func LoadChartOfAccounts(path string) (*ChartOfAccountsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart of accounts file: %w", err)
	}
	return ParseChartOfAccounts(data)
}

// ParseChartOfAccounts parses seed YAML. Every account needs a code, a name and a valid type,
// and codes must be unique within the file.
func ParseChartOfAccounts(data []byte) (*ChartOfAccountsFile, error) {
	var file ChartOfAccountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse chart of accounts YAML: %v", apperrors.ErrValidation, err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("%w: chart of accounts file has no accounts", apperrors.ErrValidation)
	}

	seen := make(map[string]bool, len(file.Accounts))
	for i, a := range file.Accounts {
		a.Code = strings.TrimSpace(a.Code)
		a.Name = strings.TrimSpace(a.Name)
		a.Type = strings.ToUpper(strings.TrimSpace(a.Type))
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("%w: account #%d needs a code and a name", apperrors.ErrValidation, i+1)
		}
		if !domain.AccountType(a.Type).IsValid() {
			return nil, fmt.Errorf("%w: account %s has invalid type %q", apperrors.ErrValidation, a.Code, a.Type)
		}
		if seen[a.Code] {
			return nil, fmt.Errorf("%w: account code %s appears twice", apperrors.ErrValidation, a.Code)
		}
		seen[a.Code] = true
		file.Accounts[i] = a
	}
	return &file, nil
}

// Apply upserts every account of the file by code in a single unit of work. Running it again
// with the same file changes nothing but the update timestamps.
func Apply(ctx context.Context, txManager portsrepo.TransactionManager, repo portsrepo.AccountWriter, file *ChartOfAccountsFile, now time.Time) (Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var result Result

	err := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		result = Result{}
		for _, a := range file.Accounts {
			account := domain.Account{
				AccountID:   uuid.NewString(),
				Code:        a.Code,
				Name:        a.Name,
				AccountType: domain.AccountType(a.Type),
				Description: a.Description,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     SystemUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: SystemUserID,
				},
			}
			created, err := repo.UpsertAccountByCode(txCtx, account)
			if err != nil {
				return fmt.Errorf("failed to seed account %s: %w", a.Code, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("Chart of accounts seeded", slog.Int("created", result.Created), slog.Int("updated", result.Updated))
	return result, nil
}
