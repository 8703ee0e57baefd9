package inspector

import (
	"math/big"
	"strconv"

	"github.com/mcncl/jsonshape/internal/models"
)

// decimalPrecision is the mantissa size, in bits, used for DECIMAL samples.
const decimalPrecision = 256

// Classification is the outcome of typing a scalar value.
type Classification struct {
	Type   models.FieldType
	Status models.FieldStatus
	Sample any
}

// Classify maps a scalar value to its field type, status and a sample value.
// Numbers are typed by the subtype the decoder assigned, not by magnitude.
// Binary and opaque values are UNSUPPORTED with no type; null carries no type.
// Containers never reach here; they classify as UNSUPPORTED.
func Classify(v models.Value) Classification {
	switch v.Kind {
	case models.KindNumber:
		return classifyNumber(v)
	case models.KindString:
		return Classification{Type: models.TypeString, Status: models.StatusSupported, Sample: v.Str}
	case models.KindBoolean:
		return Classification{Type: models.TypeBoolean, Status: models.StatusSupported, Sample: v.Bool}
	case models.KindNull:
		return Classification{Type: models.TypeNone, Status: models.StatusSupported}
	default:
		return Classification{Type: models.TypeNone, Status: models.StatusUnsupported}
	}
}

func classifyNumber(v models.Value) Classification {
	c := Classification{Status: models.StatusSupported}
	switch v.NumberKind {
	case models.NumberInt:
		c.Type = models.TypeInteger
		if n, err := strconv.ParseInt(v.Number, 10, 32); err == nil {
			c.Sample = int32(n)
		}
	case models.NumberBigInteger:
		c.Type = models.TypeBigInteger
		if n, ok := new(big.Int).SetString(v.Number, 10); ok {
			c.Sample = n
		}
	case models.NumberFloat:
		c.Type = models.TypeFloat
		if f, err := strconv.ParseFloat(v.Number, 32); err == nil {
			c.Sample = float32(f)
		}
	case models.NumberDouble:
		c.Type = models.TypeDouble
		if f, err := strconv.ParseFloat(v.Number, 64); err == nil {
			c.Sample = f
		}
	case models.NumberDecimal:
		c.Type = models.TypeDecimal
		if f, _, err := big.ParseFloat(v.Number, 10, decimalPrecision, big.ToNearestEven); err == nil {
			c.Sample = f
		}
	case models.NumberShort:
		c.Type = models.TypeShort
		if n, err := strconv.ParseInt(v.Number, 10, 16); err == nil {
			c.Sample = int16(n)
		}
	case models.NumberLong:
		c.Type = models.TypeLong
		if n, err := strconv.ParseInt(v.Number, 10, 64); err == nil {
			c.Sample = n
		}
	}
	return c
}
