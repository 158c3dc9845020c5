package adminController

import (
	"crypto/subtle"
	"elearn/config"
	"elearn/database"
	"elearn/logger"
	"elearn/middleware"
	"elearn/models"
	"elearn/services/learning"
	"elearn/services/notify"
	"elearn/utils"
	adminValidator "elearn/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Login exchanges the operator password for an admin token.
func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAdminLogin").(*adminValidator.LoginRequest)

	if subtle.ConstantTimeCompare([]byte(reqData.Password), []byte(config.AppConfig.AdminPassword)) != 1 {
		logger.Log.Warn("admin login rejected", "ip", c.IP())
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}
	token, err := middleware.GenerateAdminJWT()
	if err != nil {
		logger.Log.Error("signing admin token failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin login successful.", fiber.Map{"token": token})
}

func paginated(key string, items interface{}, total int64, p utils.Pagination) fiber.Map {
	return fiber.Map{
		key: items,
		"pagination": fiber.Map{
			"total": total,
			"page":  p.Page,
			"limit": p.Limit,
		},
	}
}

func UserList(c *fiber.Ctx) error {
	p := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	db := database.Database.Db

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		logger.Log.Error("counting users failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}
	users := []models.User{}
	if err := db.Order("id asc").Offset(p.Offset()).Limit(p.Limit).Find(&users).Error; err != nil {
		logger.Log.Error("listing users failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list fetched successfully.", paginated("users", users, total, p))
}

func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserId").(uint)
	reqData := c.Locals("validatedRole").(*adminValidator.UpdateRoleRequest)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		logger.Log.Error("loading user failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}
	if err := db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		logger.Log.Error("updating role failed", "userId", targetID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}
	user.Role = reqData.Role
	logger.Log.Info("user role updated", "userId", targetID, "role", reqData.Role)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully.", user)
}

// OrderList lists payment orders, newest first, optionally by status.
func OrderList(c *fiber.Ctx) error {
	status, _ := c.Locals("orderStatus").(string)
	p := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	query := database.Database.Db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Log.Error("counting orders failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}
	orders := []models.Order{}
	if err := query.Order("created_at desc").Offset(p.Offset()).Limit(p.Limit).Find(&orders).Error; err != nil {
		logger.Log.Error("listing orders failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully.", paginated("orders", orders, total, p))
}

// ReissueCertificates runs the missing-certificate sweep immediately.
func ReissueCertificates(c *fiber.Ctx) error {
	db := database.Database.Db
	issued, err := learning.ReissueMissingCertificates(db)
	if err != nil {
		logger.Log.Error("certificate re-issue failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to re-issue certificates!", nil)
	}
	for _, cert := range issued {
		go notify.CertificateIssued(db, cert)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate re-issue completed.", fiber.Map{
		"issued":       len(issued),
		"certificates": issued,
	})
}
