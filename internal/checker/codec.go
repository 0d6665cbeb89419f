package checker

import (
	"fmt"

	"loanchecker/pkg/domain"

	"github.com/go-faster/jx"
)

// encodeApplicant writes the applicant as JSON with a fixed field order, so
// equal applicants always encode to equal bytes.
func encodeApplicant(a domain.Applicant) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("age", func(e *jx.Encoder) { e.Int(a.Age) })
		e.Field("gender", func(e *jx.Encoder) { e.Str(string(a.Gender)) })
		e.Field("education", func(e *jx.Encoder) { e.Str(string(a.Education)) })
		e.Field("homeOwnership", func(e *jx.Encoder) { e.Str(string(a.HomeOwnership)) })
		e.Field("previousDefault", func(e *jx.Encoder) { e.Str(string(a.PreviousDefault)) })
		e.Field("income", func(e *jx.Encoder) { e.Float64(a.Income) })
		e.Field("loanAmount", func(e *jx.Encoder) { e.Float64(a.LoanAmount) })
		e.Field("interestRate", func(e *jx.Encoder) { e.Float64(a.InterestRate) })
		e.Field("loanIntent", func(e *jx.Encoder) { e.Str(string(a.LoanIntent)) })
		e.Field("loanPercentIncome", func(e *jx.Encoder) { e.Float64(a.LoanPercentIncome) })
		e.Field("creditScore", func(e *jx.Encoder) { e.Int(a.CreditScore) })
	})

	return e.Bytes()
}

func encodePrediction(p domain.Prediction) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("class", func(e *jx.Encoder) { e.Int(p.Class) })
		e.Field("probability", func(e *jx.Encoder) { e.Float64(p.Probability) })
	})

	return e.Bytes()
}

func decodePrediction(data []byte) (domain.Prediction, error) {
	var (
		p                  domain.Prediction
		hasClass, hasProba bool
	)
	if err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "class":
			p.Class, err = d.Int()
			hasClass = true
		case "probability":
			p.Probability, err = d.Float64()
			hasProba = true
		default:
			err = d.Skip()
		}

		return err
	}); err != nil {
		return domain.Prediction{}, fmt.Errorf("could not decode prediction: %w", err)
	}
	if !hasClass || !hasProba {
		return domain.Prediction{}, fmt.Errorf("could not decode prediction: incomplete object")
	}
	p.Label = domain.LabelForClass(p.Class)

	return p, nil
}
