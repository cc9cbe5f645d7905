package ddl

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type namingCase struct {
	Platform        string `yaml:"platform"`
	Name            string `yaml:"name"`
	Lookup          string `yaml:"lookup"`
	TruncatedPrefix string `yaml:"truncated_prefix"`
}

func readNamingCases(t *testing.T) []namingCase {
	t.Helper()
	f, err := os.Open("testdata/naming.yaml")
	require.NoError(t, err)
	defer f.Close()

	var cases []namingCase
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(&cases))
	return cases
}

var hashSuffix = regexp.MustCompile(`_[0-9a-f]{8}$`)

func TestNamingFixtures(t *testing.T) {
	for _, tc := range readNamingCases(t) {
		t.Run(tc.Platform+"/"+tc.Name, func(t *testing.T) {
			d, err := New(Platform(tc.Platform), Overrides{})
			require.NoError(t, err)
			naming := d.Naming()

			if tc.Lookup != "" {
				assert.Equal(t, tc.Lookup, naming.Lookup(tc.Name))
			}
			if tc.TruncatedPrefix != "" {
				truncated := naming.Truncate(tc.Name)
				assert.Len(t, truncated, naming.MaxLength)
				assert.True(t, strings.HasPrefix(truncated, tc.TruncatedPrefix), truncated)
				assert.Regexp(t, hashSuffix, truncated)
			}
		})
	}
}

func TestTruncateIsDeterministic(t *testing.T) {
	naming := Naming{MaxLength: 30, Case: CaseUpper}
	a := strings.Repeat("a", 40) + "_one"
	b := strings.Repeat("a", 40) + "_two"

	assert.Equal(t, naming.Truncate(a), naming.Truncate(a))
	assert.NotEqual(t, naming.Truncate(a), naming.Truncate(b))
	assert.Equal(t, "short_name", naming.Truncate("short_name"))
	assert.Equal(t, strings.Repeat("x", 30), Naming{MaxLength: 30}.Truncate(strings.Repeat("x", 30)))
}

func TestTruncateWithoutLimit(t *testing.T) {
	name := strings.Repeat("n", 300)
	assert.Equal(t, name, Naming{}.Truncate(name))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "USERS_EMAIL", Naming{Case: CaseUpper}.Fold("users_email"))
	assert.Equal(t, "users_email", Naming{Case: CaseLower}.Fold("Users_Email"))
	assert.Equal(t, "Users_Email", Naming{Case: CasePreserve}.Fold("Users_Email"))
}

func TestNormaliseTable(t *testing.T) {
	assert.Equal(t, "users", NormaliseTable("users"))
	assert.Equal(t, "users", NormaliseTable("app.users"))
	assert.Equal(t, "users", NormaliseTable(`"app"."users"`))
	assert.Equal(t, "users", NormaliseTable("`users`"))
	assert.Equal(t, "users", NormaliseTable("[dbo].[users]"))
}

func TestConstraintName(t *testing.T) {
	postgres := Naming{MaxLength: 63, Case: CaseLower}
	assert.Equal(t, "users_email_check", postgres.ConstraintName("public.users", "email", "check"))

	oracle := Naming{MaxLength: 30, Case: CaseUpper}
	name := oracle.ConstraintName("customer_orders", "shipping_address_line", "check")
	assert.LessOrEqual(t, len(name), 30)
	assert.True(t, strings.HasSuffix(name, "_check"), name)
}

func TestMaxConstraintLengthOverride(t *testing.T) {
	length := 20
	d, err := New(Postgres, Overrides{MaxConstraintLength: &length})
	require.NoError(t, err)
	assert.Len(t, d.Naming().Truncate(strings.Repeat("c", 40)), 20)

	tooShort := 5
	_, err = New(Postgres, Overrides{MaxConstraintLength: &tooShort})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
