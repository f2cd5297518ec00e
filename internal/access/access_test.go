package access

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"okrhub/internal/model"
	"okrhub/internal/repository"
	repoMocks "okrhub/internal/repository/mocks"
)

func TestLedgerControl_RequireWriteAccess(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		companyID  string
		setupMocks func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory)
		wantErr    error
	}{
		{
			name:   "write grant allows the mutation",
			userID: "user-1",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mLedger.On("TrackedPermission", ctx, "user-1", repository.ModuleDocuments, "doc-1").
					Return(&model.Permission{Read: true, Write: true}, nil)
			},
		},
		{
			name:   "read-only grant is rejected",
			userID: "user-1",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mLedger.On("TrackedPermission", ctx, "user-1", repository.ModuleDocuments, "doc-1").
					Return(&model.Permission{Read: true, Write: false}, nil)
			},
			wantErr: ErrNoWriteAccess,
		},
		{
			name:   "untracked instance is rejected",
			userID: "user-1",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mLedger.On("TrackedPermission", ctx, "user-1", repository.ModuleDocuments, "doc-1").
					Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNoWriteAccess,
		},
		{
			name:      "success manager acts as the company top user",
			userID:    "sm-1",
			companyID: "c2",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mDir.On("RoleOf", ctx, "sm-1").Return(&model.UserRole{UserID: "sm-1", CompanyID: "c1", IsSuccessManager: true}, nil)
				mDir.On("CEOOf", ctx, "c2").Return(&model.User{ID: "ceo-2"}, nil)
				mLedger.On("TrackedPermission", ctx, "ceo-2", repository.ModuleDocuments, "doc-1").
					Return(&model.Permission{Read: true, Write: true}, nil)
			},
		},
		{
			name:      "success manager falls back to self when the company has no top user",
			userID:    "sm-1",
			companyID: "c2",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mDir.On("RoleOf", ctx, "sm-1").Return(&model.UserRole{UserID: "sm-1", CompanyID: "c1", IsSuccessManager: true}, nil)
				mDir.On("CEOOf", ctx, "c2").Return(nil, sql.ErrNoRows)
				mLedger.On("TrackedPermission", ctx, "sm-1", repository.ModuleDocuments, "doc-1").
					Return(&model.Permission{Read: true, Write: true}, nil)
			},
		},
		{
			name:      "regular user gets no company override",
			userID:    "user-1",
			companyID: "c2",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mDir.On("RoleOf", ctx, "user-1").Return(&model.UserRole{UserID: "user-1", CompanyID: "c1"}, nil)
				mLedger.On("TrackedPermission", ctx, "user-1", repository.ModuleDocuments, "doc-1").
					Return(&model.Permission{Read: true, Write: true}, nil)
			},
		},
		{
			name:   "ledger error surfaces untranslated",
			userID: "user-1",
			setupMocks: func(mLedger *repoMocks.MockLedger, mDir *repoMocks.MockDirectory) {
				mLedger.On("TrackedPermission", ctx, "user-1", repository.ModuleDocuments, "doc-1").
					Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mLedger := new(repoMocks.MockLedger)
			mDir := new(repoMocks.MockDirectory)
			ctl := NewControl(mLedger, mDir)

			tt.setupMocks(mLedger, mDir)

			err := ctl.RequireWriteAccess(ctx, tt.userID, "doc-1", repository.ModuleDocuments, tt.companyID)

			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, ErrNoWriteAccess):
				assert.ErrorIs(t, err, ErrNoWriteAccess)
			default:
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			mLedger.AssertExpectations(t)
			mDir.AssertExpectations(t)
		})
	}
}
