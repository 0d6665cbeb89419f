package domain

// Gender is the applicant's gender as collected by the form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Education is the applicant's highest completed education level.
type Education string

const (
	EducationHighSchool Education = "High School"
	EducationBachelor   Education = "Bachelor"
	EducationMaster     Education = "Master"
	EducationAssociate  Education = "Associate"
)

// HomeOwnership describes the applicant's housing situation.
// Values other than the ones below are accepted as long as the fitted encoder knows them.
type HomeOwnership string

const (
	HomeRent     HomeOwnership = "RENT"
	HomeMortgage HomeOwnership = "MORTGAGE"
	HomeOwn      HomeOwnership = "OWN"
)

// DefaultHistory records whether the applicant previously defaulted on a loan.
type DefaultHistory string

const (
	DefaultYes DefaultHistory = "Yes"
	DefaultNo  DefaultHistory = "No"
)

// LoanIntent is the declared purpose of the loan.
type LoanIntent string

const (
	IntentEducation         LoanIntent = "EDUCATION"
	IntentMedical           LoanIntent = "MEDICAL"
	IntentVenture           LoanIntent = "VENTURE"
	IntentPersonal          LoanIntent = "PERSONAL"
	IntentDebtConsolidation LoanIntent = "DEBTCONSOLIDATION"
)

// ApplicantForm holds the user-entered attributes of a loan applicant.
// The loan-to-income ratio and the credit score are never part of the form,
// they are always derived (see Applicant).
type ApplicantForm struct {
	Age             int            `json:"age"`
	Gender          Gender         `json:"gender"`
	Education       Education      `json:"education"`
	HomeOwnership   HomeOwnership  `json:"homeOwnership"`
	PreviousDefault DefaultHistory `json:"previousDefault"`
	// Income is the annual income in currency units.
	Income float64 `json:"income"`
	// LoanAmount is the requested amount in currency units.
	LoanAmount float64 `json:"loanAmount"`
	// InterestRate is the yearly interest rate in percent.
	InterestRate float64    `json:"interestRate"`
	LoanIntent   LoanIntent `json:"loanIntent"`
}

// Applicant is the complete record consumed by scoring and inference: the form
// plus the derived features. It is a transient value object built per request
// (single check) or per row (batch check) and never mutated after prediction.
type Applicant struct {
	ApplicantForm

	// LoanPercentIncome is LoanAmount/Income rounded to two decimals, 0 when Income <= 0.
	LoanPercentIncome float64 `json:"loanPercentIncome"`
	// CreditScore is the synthetic score in [300, 850].
	CreditScore int `json:"creditScore"`
}

// Column names of the tabular (CSV) representation of an applicant. They are
// also the feature names the classifier was fitted with.
const (
	ColumnAge               = "person_age"
	ColumnGender            = "person_gender"
	ColumnEducation         = "person_education"
	ColumnIncome            = "person_income"
	ColumnHomeOwnership     = "person_home_ownership"
	ColumnPreviousDefault   = "previous_loan_defaults_on_file"
	ColumnLoanAmount        = "loan_amnt"
	ColumnInterestRate      = "loan_int_rate"
	ColumnLoanPercentIncome = "loan_percent_income"
	ColumnCreditScore       = "credit_score"
	ColumnLoanIntent        = "loan_intent"
)

// ApplicantColumns lists the tabular columns of an applicant in upload order.
var ApplicantColumns = []string{ //nolint: gochecknoglobals
	ColumnAge,
	ColumnGender,
	ColumnEducation,
	ColumnIncome,
	ColumnHomeOwnership,
	ColumnPreviousDefault,
	ColumnLoanAmount,
	ColumnInterestRate,
	ColumnLoanPercentIncome,
	ColumnCreditScore,
	ColumnLoanIntent,
}

// Categorical returns the categorical attributes keyed by column name.
func (a Applicant) Categorical() map[string]string {
	return map[string]string{
		ColumnGender:          string(a.Gender),
		ColumnEducation:       string(a.Education),
		ColumnHomeOwnership:   string(a.HomeOwnership),
		ColumnPreviousDefault: string(a.PreviousDefault),
		ColumnLoanIntent:      string(a.LoanIntent),
	}
}

// Numeric returns the numeric attributes keyed by column name.
func (a Applicant) Numeric() map[string]float64 {
	return map[string]float64{
		ColumnAge:               float64(a.Age),
		ColumnIncome:            a.Income,
		ColumnLoanAmount:        a.LoanAmount,
		ColumnInterestRate:      a.InterestRate,
		ColumnLoanPercentIncome: a.LoanPercentIncome,
		ColumnCreditScore:       float64(a.CreditScore),
	}
}
