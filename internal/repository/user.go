package repository

import (
	"context"
	"errors"

	"attrition-go/internal/database"
	"attrition-go/internal/models"

	"gorm.io/gorm"
)

func CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    email,
		Password: hashedPassword,
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, result.Error
}
