package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	studentModel "attendance_backend/internals/features/school/academics/students/model"
	subjectModel "attendance_backend/internals/features/school/academics/subjects/model"
	attendanceModel "attendance_backend/internals/features/school/attendances/model"
	authModel "attendance_backend/internals/features/users/auth/model"
	userModel "attendance_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Info().Msg("🔌 Connecting to PostgreSQL...")

	// statement_timeout bounds every query; PreferSimpleProtocol keeps PgBouncer (transaction pooling) happy.
	dsn := fmt.Sprintf("%s&application_name=attendance&options=-c%%20statement_timeout=%d",
		configs.PostgresDSN(), configs.GetInt("DB_STATEMENT_TIMEOUT_MS"))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ database connection failed")
	}
	DB = db
	log.Info().Msg("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetInt("DB_MAX_OPEN_CONNS"))
	sqlDB.SetMaxIdleConns(configs.GetInt("DB_MAX_IDLE_CONNS"))
	sqlDB.SetConnMaxIdleTime(configs.GetDuration("DB_CONN_MAX_IDLE_TIME"))
	sqlDB.SetConnMaxLifetime(configs.GetDuration("DB_CONN_MAX_LIFETIME"))
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, DB); err != nil {
			log.Warn().Err(err).Msg("warm-up ping")
			return
		}
		var n int64
		if err := DB.WithContext(ctx).Model(&subjectModel.SubjectModel{}).Count(&n).Error; err != nil {
			log.Warn().Err(err).Msg("warm-up query")
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialised")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&studentModel.StudentModel{},
		&subjectModel.SubjectModel{},
		&subjectModel.StudentSubjectModel{},
		&subjectModel.TeacherSubjectModel{},
		&attendanceModel.AttendanceModel{},
		&attendanceModel.AttendanceSubmissionModel{},
	}
}

// AutoMigrate is for tests and local dev; production schema comes from migrations/.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
