package academics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "attendance_backend/internals/features/school/academics/students/model"
	studentRepo "attendance_backend/internals/features/school/academics/students/repository"
	subjectModel "attendance_backend/internals/features/school/academics/subjects/model"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	"attendance_backend/internals/helpers/dbtime"
)

type StudentSeed struct {
	RegistrationNumber string `json:"registration_number"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
}

type SubjectSeed struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type EnrollmentSeed struct {
	RegistrationNumber string   `json:"registration_number"`
	SubjectCodes       []string `json:"subject_codes"`
	EnrollmentDate     string   `json:"enrollment_date"`
}

type TeacherSubjectSeed struct {
	Email        string   `json:"email"`
	SubjectCodes []string `json:"subject_codes"`
}

func readJSON(filePath string, out any) error {
	log.Info().Str("file", filePath).Msg("📥 reading seed")
	b, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// SeedStudentsFromJSON inserts students missing by registration number.
func SeedStudentsFromJSON(db *gorm.DB, filePath string) error {
	var seeds []StudentSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}
	for _, s := range seeds {
		row := studentModel.StudentModel{
			StudentRegistrationNumber: strings.TrimSpace(s.RegistrationNumber),
			StudentFirstName:          s.FirstName,
			StudentLastName:           s.LastName,
		}
		if e := strings.TrimSpace(s.Email); e != "" {
			row.StudentEmail = &e
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_registration_number"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return fmt.Errorf("insert student %s: %w", s.RegistrationNumber, res.Error)
		}
	}
	log.Info().Int("count", len(seeds)).Msg("✅ students seeded")
	return nil
}

// SeedSubjectsFromJSON inserts subjects missing by code.
func SeedSubjectsFromJSON(db *gorm.DB, filePath string) error {
	var seeds []SubjectSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}
	for _, s := range seeds {
		row := subjectModel.SubjectModel{
			SubjectCode: strings.TrimSpace(s.Code),
			SubjectName: s.Name,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_code"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("insert subject %s: %w", s.Code, err)
		}
	}
	log.Info().Int("count", len(seeds)).Msg("✅ subjects seeded")
	return nil
}

func subjectIDsByCode(db *gorm.DB) (map[string]uuid.UUID, error) {
	var subjects []subjectModel.SubjectModel
	if err := db.Find(&subjects).Error; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(subjects))
	for _, s := range subjects {
		out[s.SubjectCode] = s.SubjectID
	}
	return out, nil
}

// SeedEnrollmentsFromJSON links students to subjects (student_subjects).
func SeedEnrollmentsFromJSON(db *gorm.DB, filePath string) error {
	var seeds []EnrollmentSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}
	subjects, err := subjectIDsByCode(db)
	if err != nil {
		return err
	}

	n := 0
	for _, e := range seeds {
		st, err := studentRepo.FindByRegistrationNumber(context.Background(), db, e.RegistrationNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("enrollment: unknown student %s", e.RegistrationNumber)
			}
			return err
		}
		date, err := dbtime.ParseDate(e.EnrollmentDate)
		if err != nil {
			return fmt.Errorf("enrollment %s: %w", e.RegistrationNumber, err)
		}
		for _, code := range e.SubjectCodes {
			sid, ok := subjects[code]
			if !ok {
				return fmt.Errorf("enrollment %s: unknown subject %s", e.RegistrationNumber, code)
			}
			row := subjectModel.StudentSubjectModel{
				StudentSubjectStudentID:      st.StudentID,
				StudentSubjectSubjectID:      sid,
				StudentSubjectEnrollmentDate: date,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("insert enrollment %s/%s: %w", e.RegistrationNumber, code, err)
			}
			n++
		}
	}
	log.Info().Int("count", n).Msg("✅ enrollments seeded")
	return nil
}

// SeedTeacherSubjectsFromJSON assigns teachers (by email) to subjects.
func SeedTeacherSubjectsFromJSON(db *gorm.DB, filePath string) error {
	var seeds []TeacherSubjectSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}
	subjects, err := subjectIDsByCode(db)
	if err != nil {
		return err
	}

	n := 0
	for _, t := range seeds {
		u, err := authRepo.FindUserByEmail(context.Background(), db, t.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("teacher assignment: unknown user %s", t.Email)
			}
			return err
		}
		for _, code := range t.SubjectCodes {
			sid, ok := subjects[code]
			if !ok {
				return fmt.Errorf("teacher assignment %s: unknown subject %s", t.Email, code)
			}
			row := subjectModel.TeacherSubjectModel{
				TeacherSubjectUserID:    u.ID,
				TeacherSubjectSubjectID: sid,
			}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("insert teacher assignment %s/%s: %w", t.Email, code, err)
			}
			n++
		}
	}
	log.Info().Int("count", n).Msg("✅ teacher assignments seeded")
	return nil
}
