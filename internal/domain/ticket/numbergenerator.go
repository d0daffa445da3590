package ticket

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

const (
	NumberPrefix       = "TCK"
	numberSuffixLength = 4
)

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// DefaultNumberGenerator produces TCK-<base36 unix millis>-<4 random base36 chars>.
type DefaultNumberGenerator struct{}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{}
}

var suffixSpace = big.NewInt(36 * 36 * 36 * 36)

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	millis := biztime.NowUTC().UnixMilli()

	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket number: %w", err)
	}
	suffix := strconv.FormatInt(n.Int64(), 36)
	suffix = strings.Repeat("0", numberSuffixLength-len(suffix)) + suffix

	return fmt.Sprintf("%s-%s-%s",
		NumberPrefix,
		strings.ToUpper(strconv.FormatInt(millis, 36)),
		strings.ToUpper(suffix),
	), nil
}
