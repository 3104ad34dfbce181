package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// tickerPattern accepts equities (BRK.B), indices (^GSPC) and Yahoo suffixes (BF-B, EURUSD=X)
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,16}$`)

// newValidator builds the query validator with the ticker rule registered
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerPattern.MatchString(fl.Field().String())
	})
	return v
}

// listQuery is the query of GET /stocks/sp500
type listQuery struct {
	Limit int `validate:"min=1,max=500"`
}

// detailQuery is the path and query of GET /stocks/{symbol}
type detailQuery struct {
	Symbol    string `validate:"required,ticker"`
	Timeframe string
}

// historyQuery is the path and query of GET /stocks/{symbol}/grades
type historyQuery struct {
	Symbol string `validate:"required,ticker"`
	Limit  int    `validate:"min=1,max=365"`
}

// intParam parses an optional integer query parameter
func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// validationMessage renders the first failed rule as a client message
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "ticker":
			return fmt.Sprintf("invalid symbol %q", fe.Value())
		case "min":
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s is invalid", field)
	}
	return err.Error()
}
