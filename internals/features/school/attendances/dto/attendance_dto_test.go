package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "attendance_backend/internals/helpers"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 100.0, Percentage(4, 4))
	assert.Equal(t, 0.0, Percentage(0, 5))
	assert.Equal(t, 0.0, Percentage(0, 0))
}

func TestRecordAttendanceRequest_Validation(t *testing.T) {
	req := RecordAttendanceRequest{
		SubjectID:      " 5f0c6d3e-8f0a-4a53-9d7e-0d8f4c7e2a11 ",
		AttendanceDate: "2024-03-04",
		Attendances: map[string]string{
			" 0B1E2C3D-4E5F-4A6B-8C7D-9E0F1A2B3C4D ": " Late ",
		},
	}
	req.Normalize()
	require.NoError(t, helper.Validate.Struct(&req))
	assert.Equal(t, "late", req.Attendances["0b1e2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"])

	req.Attendances = map[string]string{"not-a-uuid": "present"}
	err := helper.Validate.Struct(&req)
	require.Error(t, err)
	assert.Contains(t, helper.ValidationMessages(err), "attendances.not-a-uuid")
}
