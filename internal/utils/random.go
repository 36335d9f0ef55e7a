package utils

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
	"golang.org/x/crypto/bcrypt"
)

var commonGivenNames = []string{
	"Jose", "Maria", "Juan", "Ana", "Mark", "Angelica", "John", "Kristine",
	"Paolo", "Jasmine", "Carlo", "Patricia", "Miguel", "Camille", "Rafael", "Bea",
}
var commonSurnames = []string{
	"Santos", "Reyes", "Cruz", "Bautista", "Ocampo", "Garcia", "Mendoza", "Torres",
	"Tomas", "Andrada", "Castillo", "Flores", "Villanueva", "Ramos", "Aquino", "Dela Cruz",
}

func GenerateRandomFullName() string {
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return given + " " + surname
}

var digits = "0123456789"

// GenerateUsernameFromFullName 名字首字母加姓氏，再附上 1 到 3 位数字，例如 jsantos42
func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	if len(parts) == 0 {
		return GenerateRandomID(6, 3)
	}

	username := parts[0][:1] + strings.Join(parts[1:], "")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomOperator(password string, emailDomainName string) (*domain.Operator, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	operator := &domain.Operator{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleDispatcher,
		IsActive:     true,
	}

	return operator, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var lowerLetters = "abcdefghijklmnopqrstuvwxyz"

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]byte, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = lowerLetters[rand.Intn(len(lowerLetters))]
		} else {
			random_id[i] = digits[rand.Intn(len(digits))]
		}
	}
	return string(random_id)
}

/**
 * 随机生成一次洪水场景
 * 1. 每个区域有一半的概率被淹，被淹区域的水位在 [0.5, 3.5) 米之间，其余区域在 [0, 0.5) 米之间
 * 2. 每个区域上报 0 到 maxPersonnel 名各类人员
 * 3. 水位保留两位小数，和前端输入的精度一致
 */
func GenerateRandomScenario(rng *rand.Rand, zones []*domain.Zone, maxPersonnel int) simulation.Request {
	req := simulation.Request{
		Barangays: make([]simulation.BarangayInput, 0, len(zones)),
	}

	for i, zone := range zones {
		level := rng.Float64() * 0.5
		if rng.Intn(2) == 0 {
			level = 0.5 + rng.Float64()*3
		}

		req.Barangays = append(req.Barangays, simulation.BarangayInput{
			ID:         fmt.Sprintf("%d", i),
			Name:       zone.Name,
			WaterLevel: math.Round(level*100) / 100,
			Personnel: simulation.PersonnelInput{
				SRR:    rng.Intn(maxPersonnel + 1),
				Health: rng.Intn(maxPersonnel + 1),
				Log:    rng.Intn(maxPersonnel + 1),
			},
		})
	}

	return req
}
