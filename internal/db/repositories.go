package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Periods *PeriodRepository
	Uploads *UploadRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Periods: NewPeriodRepository(database),
		Uploads: NewUploadRepository(database),
	}
}
