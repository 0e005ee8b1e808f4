package money

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Won is an amount in Korean won.
// The backend prices everything in whole won but serializes BigDecimal values,
// sometimes as JSON strings, so decoding goes through decimal and rounds.
type Won int64

func (w Won) Mul(n int) Won { return w * Won(n) }

func (w Won) Int64() int64 { return int64(w) }

// String formats the amount with thousands separators, e.g. "78,000".
func (w Won) String() string {
	raw := strconv.FormatInt(int64(w), 10)

	sign := ""
	if raw[0] == '-' {
		sign, raw = "-", raw[1:]
	}

	out := make([]byte, 0, len(raw)+len(raw)/3)
	for i := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}

		out = append(out, raw[i])
	}

	return sign + string(out)
}

func (w Won) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(w), 10)), nil
}

func (w *Won) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = 0
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("won [%s]: %w", data, err)
	}

	*w = Won(d.Round(0).IntPart())

	return nil
}
