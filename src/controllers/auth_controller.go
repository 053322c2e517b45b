package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// Signup handles registration for both seekers and recruiters. The role field
// picks the account collection; everything else follows the same path.
func Signup(c *fiber.Ctx) error {
	var userData struct {
		Role     string `json:"role"`
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Company  string `json:"company"`
	}

	if err := c.BodyParser(&userData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if userData.Name == "" || userData.Username == "" || userData.Email == "" || userData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All fields are required"))
	}

	if len(userData.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Password must be at least 6 characters"))
	}

	role, err := models.ParseRole(userData.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Role must be seeker or recruiter"))
	}

	collName, err := models.CollectionForRole(role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Role must be seeker or recruiter"))
	}
	coll := lib.DB.Collection(collName)

	count, err := coll.CountDocuments(c.Context(), bson.M{"$or": []bson.M{
		{"email": userData.Email},
		{"username": userData.Username},
	}})
	if err != nil {
		log.Printf("Error checking existing account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email or username already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), 11)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	now := time.Now()
	id := primitive.NewObjectID()
	var doc interface{}
	switch role {
	case models.RoleSeeker:
		doc = models.Seeker{
			Id:        id,
			Name:      userData.Name,
			Username:  userData.Username,
			Email:     userData.Email,
			Password:  string(hashedPassword),
			CreatedAt: now,
			UpdatedAt: now,
		}
	case models.RoleRecruiter:
		doc = models.Recruiter{
			Id:        id,
			Name:      userData.Name,
			Username:  userData.Username,
			Email:     userData.Email,
			Password:  string(hashedPassword),
			Company:   userData.Company,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if _, err := coll.InsertOne(c.Context(), doc); err != nil {
		log.Printf("Error creating account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create account"))
	}

	token, err := lib.GenerateJWT(models.Identity{ID: id, Role: role})
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to generate token"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"token":   token,
		"role":    role,
	})
}

// Login authenticates by username and password within the requested role's
// collection and returns a JWT.
func Login(c *fiber.Ctx) error {
	var loginData struct {
		Role     string `json:"role"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&loginData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if loginData.Username == "" || loginData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username and password are required"))
	}

	role, err := models.ParseRole(loginData.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Role must be seeker or recruiter"))
	}

	collName, _ := models.CollectionForRole(role)
	var account struct {
		Id       primitive.ObjectID `bson:"_id"`
		Password string             `bson:"password"`
	}
	err = lib.DB.Collection(collName).FindOne(c.Context(), bson.M{"username": loginData.Username}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
		}
		log.Printf("Error finding account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(loginData.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateJWT(models.Identity{ID: account.Id, Role: role})
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to generate token"))
	}

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
		"role":    role,
	})
}
