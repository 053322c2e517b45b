package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// GetFeedPosts returns posts authored by the authenticated user and their
// accepted connections, newest first.
func GetFeedPosts(c *fiber.Ctx) error {
	me := principal(c)

	invitations, err := ChatService.Connections(c.Context(), me.Identity)
	if err != nil {
		return chatError(c, err)
	}

	authors := []models.Identity{me.Identity}
	for _, inv := range invitations {
		peer := inv.SenderIdentity()
		if peer.Equal(me.Identity) {
			peer = inv.ReceiverIdentity()
		}
		authors = append(authors, peer)
	}

	authorFilters := make([]bson.M, 0, len(authors))
	for _, author := range authors {
		authorFilters = append(authorFilters, bson.M{
			"author":      author.ID,
			"authorModel": author.Role,
		})
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := lib.DB.Collection("posts").Find(c.Context(), bson.M{"$or": authorFilters}, opts)
	if err != nil {
		log.Printf("Error finding feed posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	defer cursor.Close(c.Context())

	var posts []models.Post
	if err := cursor.All(c.Context(), &posts); err != nil {
		log.Printf("Error decoding feed posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	dtos := make([]models.PostDto, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, convertToPostDto(c, post))
	}
	return c.JSON(dtos)
}

// CreatePost creates a new post for the authenticated user. The image field
// carries a reference to an already-hosted media object.
func CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		Image   string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if req.Content == "" && req.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Post content is required"))
	}

	me := principal(c)
	now := time.Now()
	post := models.Post{
		Id:          primitive.NewObjectID(),
		Author:      me.Identity.ID,
		AuthorModel: me.Identity.Role,
		Content:     req.Content,
		Image:       req.Image,
		Likes:       []models.Identity{},
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := lib.DB.Collection("posts").InsertOne(c.Context(), post); err != nil {
		log.Printf("Error creating post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create post"))
	}

	return c.Status(fiber.StatusCreated).JSON(convertToPostDto(c, post))
}

// GetPostByID returns a single post.
func GetPostByID(c *fiber.Ctx) error {
	post, ferr := findPost(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}
	return c.JSON(convertToPostDto(c, *post))
}

// DeletePost deletes a post owned by the authenticated user.
func DeletePost(c *fiber.Ctx) error {
	post, ferr := findPost(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	me := principal(c)
	if !post.AuthorIdentity().Equal(me.Identity) {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this post"))
	}

	if _, err := lib.DB.Collection("posts").DeleteOne(c.Context(), bson.M{"_id": post.Id}); err != nil {
		log.Printf("Error deleting post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete post"))
	}
	return c.JSON(lib.MessageResponse("Post deleted successfully"))
}

// CreateComment appends a comment to a post and notifies the author.
func CreateComment(c *fiber.Ctx) error {
	post, ferr := findPost(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Comment content is required"))
	}

	me := principal(c)
	comment := models.Comment{
		Id:        primitive.NewObjectID(),
		Content:   req.Content,
		User:      me.Identity.ID,
		UserModel: me.Identity.Role,
		CreatedAt: time.Now(),
	}

	_, err := lib.DB.Collection("posts").UpdateOne(
		c.Context(),
		bson.M{"_id": post.Id},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		log.Printf("Error creating comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create comment"))
	}

	if !post.AuthorIdentity().Equal(me.Identity) {
		createNotification(c, models.Notification{
			Recipient:        post.Author,
			RecipientModel:   post.AuthorModel,
			Type:             models.NotificationPostCommented,
			RelatedUser:      me.Identity.ID,
			RelatedUserModel: me.Identity.Role,
			RelatedPost:      post.Id,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// LikePost toggles the authenticated user's like on a post.
func LikePost(c *fiber.Ctx) error {
	post, ferr := findPost(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	me := principal(c)
	liked := false
	for _, like := range post.Likes {
		if like.Equal(me.Identity) {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": bson.M{"id": me.Identity.ID, "role": me.Identity.Role}}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": me.Identity}}
	}

	if _, err := lib.DB.Collection("posts").UpdateOne(c.Context(), bson.M{"_id": post.Id}, update); err != nil {
		log.Printf("Error toggling like: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to like post"))
	}

	if !liked && !post.AuthorIdentity().Equal(me.Identity) {
		createNotification(c, models.Notification{
			Recipient:        post.Author,
			RecipientModel:   post.AuthorModel,
			Type:             models.NotificationPostLiked,
			RelatedUser:      me.Identity.ID,
			RelatedUserModel: me.Identity.Role,
			RelatedPost:      post.Id,
		})
	}

	if liked {
		return c.JSON(lib.MessageResponse("Post unliked"))
	}
	return c.JSON(lib.MessageResponse("Post liked"))
}

func findPost(c *fiber.Ctx) (*models.Post, *fiber.Error) {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid post ID format")
	}

	var post models.Post
	err = lib.DB.Collection("posts").FindOne(c.Context(), bson.M{"_id": postID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		log.Printf("Error finding post: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	return &post, nil
}

// convertToPostDto populates the author and comment user profiles for a post.
func convertToPostDto(c *fiber.Ctx, post models.Post) models.PostDto {
	dto := models.PostDto{
		ID:        post.Id,
		Content:   post.Content,
		Image:     post.Image,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if author, err := lib.FindUserDto(c.Context(), post.AuthorIdentity()); err == nil {
		dto.Author = *author
	}

	for _, comment := range post.Comments {
		commentDto := models.CommentDto{
			ID:        comment.Id,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		user := models.Identity{ID: comment.User, Role: comment.UserModel}
		if userDto, err := lib.FindUserDto(c.Context(), user); err == nil {
			commentDto.User = *userDto
		}
		dto.Comments = append(dto.Comments, commentDto)
	}
	return dto
}
