package v1handler

import (
	"math"
	"time"

	"loanchecker/internal/checker"
	"loanchecker/internal/ui"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/serrors"

	"github.com/go-faster/jx"
)

// decodeForm reads an applicant form. Unknown fields are skipped; the schema
// decides which are allowed.
func decodeForm(data []byte) (domain.ApplicantForm, error) {
	var form domain.ApplicantForm
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "age":
			var age float64
			age, err = d.Float64()
			if err == nil && age != math.Trunc(age) {
				return serrors.With(serrors.ErrBadRequest, "age must be a whole number")
			}
			form.Age = int(age)
		case "gender":
			form.Gender, err = decodeString[domain.Gender](d)
		case "education":
			form.Education, err = decodeString[domain.Education](d)
		case "homeOwnership":
			form.HomeOwnership, err = decodeString[domain.HomeOwnership](d)
		case "previousDefault":
			form.PreviousDefault, err = decodeString[domain.DefaultHistory](d)
		case "income":
			form.Income, err = d.Float64()
		case "loanAmount":
			form.LoanAmount, err = d.Float64()
		case "interestRate":
			form.InterestRate, err = d.Float64()
		case "loanIntent":
			form.LoanIntent, err = decodeString[domain.LoanIntent](d)
		default:
			err = d.Skip()
		}

		return err
	})
	if err != nil {
		return domain.ApplicantForm{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode form")
	}

	return form, nil
}

func decodeString[T ~string](d *jx.Decoder) (T, error) {
	s, err := d.Str()

	return T(s), err
}

func decodeFeedback(data []byte) (domain.FeedbackInput, error) {
	var in domain.FeedbackInput
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			in.Name, err = d.Str()
		case "rating":
			in.Rating, err = d.Int()
		case "comments":
			in.Comments, err = d.Str()
		default:
			err = d.Skip()
		}

		return err
	})
	if err != nil {
		return domain.FeedbackInput{}, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode feedback")
	}

	return in, nil
}

func encodeApplicant(e *jx.Encoder, a domain.Applicant) {
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
}

func encodeScore(e *jx.Encoder, s domain.ScoreEstimate) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("loanPercentIncome", func(e *jx.Encoder) { e.Float64(s.LoanPercentIncome) })
		e.Field("creditScore", func(e *jx.Encoder) { e.Int(s.CreditScore) })
		e.Field("adjustments", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, adj := range s.Adjustments {
					e.Obj(func(e *jx.Encoder) {
						e.Field("rule", func(e *jx.Encoder) { e.Str(adj.Rule) })
						e.Field("delta", func(e *jx.Encoder) { e.Int(adj.Delta) })
					})
				}
			})
		})
	})
}

func encodeCheckResult(e *jx.Encoder, res *domain.CheckResult) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("label", func(e *jx.Encoder) { e.Str(string(res.Prediction.Label)) })
		e.Field("class", func(e *jx.Encoder) { e.Int(res.Prediction.Class) })
		e.Field("probability", func(e *jx.Encoder) { e.Float64(res.Prediction.Probability) })
		e.Field("percent", func(e *jx.Encoder) { e.Str(res.Prediction.Percent()) })
		e.Field("cached", func(e *jx.Encoder) { e.Bool(res.Cached) })
		e.Field("applicant", func(e *jx.Encoder) { encodeApplicant(e, res.Applicant) })
	})
}

func encodeFeedback(e *jx.Encoder, f *domain.Feedback) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(f.ID.String()) })
		e.Field("name", func(e *jx.Encoder) { e.Str(f.DisplayName()) })
		e.Field("rating", func(e *jx.Encoder) { e.Int(f.Rating) })
		e.Field("comments", func(e *jx.Encoder) { e.Str(f.Comments) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(f.CreatedAt.UTC().Format(time.RFC3339Nano)) })
	})
}

func encodeFeedbackList(e *jx.Encoder, items []domain.Feedback, next string) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range items {
					encodeFeedback(e, &items[i])
				}
			})
		})
		e.Field("nextCursor", func(e *jx.Encoder) {
			if next == "" {
				e.Null()

				return
			}
			e.Str(next)
		})
	})
}

type batchSummary struct {
	result    *checker.BatchResult
	threshold float64
	limit     int
}

func encodeBatchSummary(e *jx.Encoder, s batchSummary) {
	approved := s.result.Filter(s.threshold)
	preview := approved
	if len(preview) > s.limit {
		preview = preview[:s.limit]
	}

	e.Obj(func(e *jx.Encoder) {
		e.Field("total", func(e *jx.Encoder) { e.Int(s.result.Total()) })
		e.Field("predicted", func(e *jx.Encoder) { e.Int(len(s.result.Rows)) })
		e.Field("failed", func(e *jx.Encoder) { e.Int(len(s.result.Failures)) })
		e.Field("threshold", func(e *jx.Encoder) { e.Float64(s.threshold) })
		e.Field("matching", func(e *jx.Encoder) { e.Int(len(approved)) })
		e.Field("columns", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, col := range s.result.Header {
					e.Str(col)
				}
			})
		})
		e.Field("rows", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, row := range preview {
					encodeBatchRow(e, s.result.Header, row)
				}
			})
		})
		e.Field("failures", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, f := range s.result.Failures {
					e.Obj(func(e *jx.Encoder) {
						e.Field("row", func(e *jx.Encoder) { e.Int(f.Row) })
						e.Field("reason", func(e *jx.Encoder) { e.Str(f.Reason) })
					})
				}
			})
		})
	})
}

func encodeBatchRow(e *jx.Encoder, header []string, row checker.BatchRow) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("row", func(e *jx.Encoder) { e.Int(row.Number) })
		e.Field("values", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for i, col := range header {
					if i < len(row.Values) {
						e.Field(col, func(e *jx.Encoder) { e.Str(row.Values[i]) })
					}
				}
			})
		})
		e.Field("prediction", func(e *jx.Encoder) { e.Int(row.Prediction.Class) })
		e.Field("approvalProb", func(e *jx.Encoder) { e.Float64(row.Prediction.Probability) })
	})
}

func encodePage(e *jx.Encoder, p ui.Page) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("screen", func(e *jx.Encoder) { e.Str(p.Slug) })
		e.Field("title", func(e *jx.Encoder) { e.Str(p.Title) })
		e.Field("sections", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, s := range p.Sections {
					encodeSection(e, s)
				}
			})
		})
	})
}

func encodeStrings(e *jx.Encoder, values []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range values {
			e.Str(v)
		}
	})
}

func encodeSection(e *jx.Encoder, s ui.Section) {
	e.Obj(func(e *jx.Encoder) {
		if s.Heading != "" {
			e.Field("heading", func(e *jx.Encoder) { e.Str(s.Heading) })
		}
		if len(s.Paragraphs) > 0 {
			e.Field("paragraphs", func(e *jx.Encoder) { encodeStrings(e, s.Paragraphs) })
		}
		if len(s.Items) > 0 {
			e.Field("items", func(e *jx.Encoder) { encodeStrings(e, s.Items) })
		}
		if s.Table != nil {
			e.Field("table", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("columns", func(e *jx.Encoder) { encodeStrings(e, s.Table.Columns) })
					e.Field("rows", func(e *jx.Encoder) {
						e.Arr(func(e *jx.Encoder) {
							for _, row := range s.Table.Rows {
								encodeStrings(e, row)
							}
						})
					})
				})
			})
		}
		if s.Code != "" {
			e.Field("code", func(e *jx.Encoder) { e.Str(s.Code) })
		}
		if s.Form != nil {
			e.Field("form", func(e *jx.Encoder) { encodeForm(e, s.Form) })
		}
	})
}

func encodeForm(e *jx.Encoder, f *ui.Form) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("action", func(e *jx.Encoder) { e.Str(f.Action) })
		if f.Download != "" {
			e.Field("download", func(e *jx.Encoder) { e.Str(f.Download) })
		}
		e.Field("method", func(e *jx.Encoder) { e.Str(f.Method) })
		e.Field("encoding", func(e *jx.Encoder) { e.Str(f.Encoding) })
		e.Field("submit", func(e *jx.Encoder) { e.Str(f.Submit) })
		e.Field("fields", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, field := range f.Fields {
					encodeField(e, field)
				}
			})
		})
	})
}

func encodeField(e *jx.Encoder, f ui.Field) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(f.Name) })
		e.Field("label", func(e *jx.Encoder) { e.Str(f.Label) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(f.Kind) })
		optional := []struct{ key, value string }{
			{"default", f.Default},
			{"min", f.Min},
			{"max", f.Max},
			{"step", f.Step},
			{"help", f.Help},
		}
		for _, o := range optional {
			if o.value != "" {
				e.Field(o.key, func(e *jx.Encoder) { e.Str(o.value) })
			}
		}
		if len(f.Options) > 0 {
			e.Field("options", func(e *jx.Encoder) { encodeStrings(e, f.Options) })
		}
		if f.ReadOnly {
			e.Field("readOnly", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
}
