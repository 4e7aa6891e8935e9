package dto

import (
	"github.com/google/uuid"

	studentModel "attendance_backend/internals/features/school/academics/students/model"
	"attendance_backend/internals/features/school/academics/subjects/model"
)

type SubjectResponse struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	SubjectCode string    `json:"subject_code"`
}

func FromSubjectModel(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID:   m.SubjectID,
		SubjectName: m.SubjectName,
		SubjectCode: m.SubjectCode,
	}
}

func FromSubjectModels(rows []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromSubjectModel(r))
	}
	return out
}

// EnrolledStudentResponse feeds the attendance recording form.
type EnrolledStudentResponse struct {
	StudentID                 uuid.UUID `json:"student_id"`
	StudentRegistrationNumber string    `json:"student_registration_number"`
	StudentFirstName          string    `json:"student_first_name"`
	StudentLastName           string    `json:"student_last_name"`
}

func FromStudentModels(rows []studentModel.StudentModel) []EnrolledStudentResponse {
	out := make([]EnrolledStudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EnrolledStudentResponse{
			StudentID:                 r.StudentID,
			StudentRegistrationNumber: r.StudentRegistrationNumber,
			StudentFirstName:          r.StudentFirstName,
			StudentLastName:           r.StudentLastName,
		})
	}
	return out
}
