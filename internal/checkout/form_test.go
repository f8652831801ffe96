package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FirstName: "Amara",
		LastName:  "Okafor",
		Email:     "amara@example.com",
		Phone:     "08012345678",
		Address:   "14B Adesola Street, Lekki Phase 1",
		City:      "Lagos",
		State:     "Lagos",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	assert.Nil(t, validForm().Validate())
}

func TestValidate_OneMessagePerInvalidField(t *testing.T) {
	form := validForm()
	form.Email = "not-an-email"

	errs := form.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
}

func TestValidate_NameLengths(t *testing.T) {
	form := validForm()
	form.FirstName = "A"
	errs := form.Validate()
	assert.Equal(t, "First name must be at least 2 characters", errs["firstName"])

	form = validForm()
	form.FirstName = strings.Repeat("A", 51)
	errs = form.Validate()
	assert.Equal(t, "First name too long", errs["firstName"])

	form = validForm()
	form.LastName = ""
	errs = form.Validate()
	assert.Equal(t, "Last name must be at least 2 characters", errs["lastName"])
}

func TestValidate_Phone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"08012345678", true},
		{"07098765432", true},
		{"09011112222", true},
		{"+2348012345678", true},
		{"2348012345678", true},
		{"0601234567", true},  // fails the strict pattern, passes the lenient length fallback
		{"not-a-phone-number", true}, // lenient fallback again
		{"12345", false},
		{"", false},
	}

	for _, tc := range cases {
		form := validForm()
		form.Phone = tc.phone
		errs := form.Validate()
		if tc.valid {
			assert.Nil(t, errs, "phone %q should be accepted", tc.phone)
		} else {
			assert.Equal(t, "Enter a valid Nigerian phone number", errs["phone"], "phone %q", tc.phone)
		}
	}
}

func TestValidate_Address(t *testing.T) {
	form := validForm()
	form.Address = "14B"

	errs := form.Validate()
	assert.Equal(t, "Please enter your delivery address", errs["address"])
}

func TestValidate_CityAndState(t *testing.T) {
	form := validForm()
	form.City = "L"
	errs := form.Validate()
	assert.Equal(t, "City is required", errs["city"])

	form = validForm()
	form.State = ""
	errs = form.Validate()
	assert.Equal(t, "State is required", errs["state"])

	form = validForm()
	form.State = "Atlantis"
	errs = form.Validate()
	assert.Equal(t, "Select a valid state", errs["state"])

	form = validForm()
	form.State = "FCT - Abuja"
	assert.Nil(t, form.Validate())
}

func TestValidate_CollectsAllInvalidFields(t *testing.T) {
	errs := Form{}.Validate()

	require.NotNil(t, errs)
	assert.Len(t, errs, 7)
	for _, field := range []string{"firstName", "lastName", "email", "phone", "address", "city", "state"} {
		assert.Contains(t, errs, field)
	}
}

func TestStates_ContainsAllThirtySeven(t *testing.T) {
	states := States()
	assert.Len(t, states, 37)
	assert.Contains(t, states, "Lagos")
	assert.Contains(t, states, "FCT - Abuja")
}
