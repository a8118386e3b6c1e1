package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuestionnaireBody = `{
	"user_id": 7,
	"description": "Backend developer",
	"goals": " Learn the codebase ",
	"challenges": "Legacy code",
	"expectations": "Mentorship"
}`

func TestCreateQuestionnaire(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got domain.NewQuestionnaire
		questionnaires := &mockQuestionnaireStore{
			createFn: func(_ context.Context, q domain.NewQuestionnaire) (int64, error) {
				got = q
				return 3, nil
			},
		}
		h, _ := newTestRouter(t, &mockUserStore{}, questionnaires, mockPinger{})

		rr := doRequest(h, http.MethodPost, "/questionnaires", validQuestionnaireBody)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp CreateQuestionnaireResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.QuestionnaireID)
		assert.Equal(t, "Questionnaire added successfully", resp.Message)
		assert.Equal(t, int64(7), got.UserID)
		assert.Equal(t, "Learn the codebase", got.Goals)
	})

	tests := []struct {
		name           string
		body           string
		storeErr       error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "blank answer",
			body:           `{"user_id":7,"description":"d","goals":"   ","challenges":"c","expectations":"e"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid Goals: required field",
		},
		{
			name:           "non-positive user id",
			body:           `{"user_id":0,"description":"d","goals":"g","challenges":"c","expectations":"e"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid UserID: must be greater than 0",
		},
		{
			name:           "user id is a string",
			body:           `{"user_id":"7","description":"d","goals":"g","challenges":"c","expectations":"e"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request format",
		},
		{
			name:           "user does not exist",
			body:           validQuestionnaireBody,
			storeErr:       fmt.Errorf("%w: fk violation", store.ErrUserDoesNotExist),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "User does not exist",
		},
		{
			name:           "database unreachable",
			body:           validQuestionnaireBody,
			storeErr:       store.ErrConnection,
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "Service temporarily unavailable",
		},
		{
			name:           "internal failure",
			body:           validQuestionnaireBody,
			storeErr:       store.ErrInternal,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to add questionnaire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questionnaires := &mockQuestionnaireStore{
				createFn: func(context.Context, domain.NewQuestionnaire) (int64, error) {
					if tt.storeErr == nil {
						t.Fatal("store must not be called for invalid requests")
					}
					return 0, tt.storeErr
				},
			}
			h, _ := newTestRouter(t, &mockUserStore{}, questionnaires, mockPinger{})

			rr := doRequest(h, http.MethodPost, "/questionnaires", tt.body)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedError, resp.Error)
		})
	}
}

func TestGetQuestionnaire(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		questionnaires := &mockQuestionnaireStore{
			getByUserIDFn: func(_ context.Context, userID int64) (*domain.Questionnaire, error) {
				return &domain.Questionnaire{
					ID: 3, UserID: userID, Description: "d", Goals: "g",
					Challenges: "c", Expectations: "e", Completed: true, CreatedAt: createdAt,
				}, nil
			},
		}
		h, _ := newTestRouter(t, &mockUserStore{}, questionnaires, mockPinger{})

		rr := doRequest(h, http.MethodGet, "/users/7/questionnaire", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var resp QuestionnaireResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, int64(7), resp.UserID)
		assert.True(t, resp.Completed)
		assert.True(t, createdAt.Equal(resp.CreatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		questionnaires := &mockQuestionnaireStore{
			getByUserIDFn: func(context.Context, int64) (*domain.Questionnaire, error) {
				return nil, store.ErrQuestionnaireNotFound
			},
		}
		h, _ := newTestRouter(t, &mockUserStore{}, questionnaires, mockPinger{})

		rr := doRequest(h, http.MethodGet, "/users/7/questionnaire", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Questionnaire not found")
	})
}

func TestDeleteQuestionnaire(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		questionnaires := &mockQuestionnaireStore{
			deleteByUserIDFn: func(context.Context, int64) error { return nil },
		}
		h, _ := newTestRouter(t, &mockUserStore{}, questionnaires, mockPinger{})

		rr := doRequest(h, http.MethodDelete, "/users/7/questionnaire", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Questionnaire deleted successfully")
	})

	t.Run("invalid id", func(t *testing.T) {
		h, _ := newTestRouter(t, &mockUserStore{}, &mockQuestionnaireStore{}, mockPinger{})

		rr := doRequest(h, http.MethodDelete, "/users/x/questionnaire", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
