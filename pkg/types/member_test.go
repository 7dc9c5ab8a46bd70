package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberValidate(t *testing.T) {
	tests := []struct {
		name    string
		member  Member
		wantErr error
	}{
		{
			name:   "valid member",
			member: Member{Name: "Ana", Email: "ana@x.com"},
		},
		{
			name:    "empty name rejected",
			member:  Member{Name: "", Email: "ana@x.com"},
			wantErr: ErrInvalidName,
		},
		{
			name:    "oversized name rejected",
			member:  Member{Name: strings.Repeat("a", NameMaxLen+1), Email: "ana@x.com"},
			wantErr: ErrInvalidName,
		},
		{
			name:   "name at limit accepted",
			member: Member{Name: strings.Repeat("a", NameMaxLen), Email: "ana@x.com"},
		},
		{
			name:    "empty email rejected",
			member:  Member{Name: "Ana", Email: ""},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "malformed email rejected",
			member:  Member{Name: "Ana", Email: "not-an-email"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "email without domain rejected",
			member:  Member{Name: "Ana", Email: "ana@"},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "oversized email rejected",
			member: Member{
				Name:  "Ana",
				Email: strings.Repeat("a", EmailMaxLen) + "@x.com",
			},
			wantErr: ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
