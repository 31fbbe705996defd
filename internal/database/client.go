package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"c2b-order-backend/internal/models"
)

// Client wraps the gorm handle with one method per query the handlers need.
type Client struct {
	db *gorm.DB
}

func NewClient(db *gorm.DB) *Client {
	return &Client{db: db}
}

// --- users ---

// FindOrCreateUserByPhone returns the user for the phone number, creating the
// record on first sight. Repeated logins with the same phone never create a
// second row.
func (c *Client) FindOrCreateUserByPhone(phone string) (*models.User, error) {
	var user models.User
	err := c.db.Where(models.User{Phone: phone}).FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find or create user: %w", err)
	}
	return &user, nil
}

func (c *Client) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUsersWithSubmittedOrders returns all users newest first, each preloaded
// with their submitted orders only. Drafts never leave the owner's view.
func (c *Client) ListUsersWithSubmittedOrders() ([]models.User, error) {
	var users []models.User
	err := c.db.
		Preload("Orders", "status = ?", models.OrderStatusSubmitted).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// --- admins ---

func (c *Client) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := c.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// UpsertAdmin creates the admin account or replaces its password hash.
func (c *Client) UpsertAdmin(username, passwordHash string) (*models.Admin, error) {
	var admin models.Admin
	err := c.db.Where(models.Admin{Username: username}).
		Assign(models.Admin{Password: passwordHash}).
		FirstOrCreate(&admin).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return &admin, nil
}

// --- orders ---

func (c *Client) CreateOrder(order *models.Order) error {
	if err := c.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetOrder fetches an order scoped to its owner. A missing order and someone
// else's order both come back as ErrNotFound.
func (c *Client) GetOrder(orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := c.db.Preload("Images").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetOrderWithOwner fetches an order by id regardless of owner, for admin
// views. Owner and images come preloaded.
func (c *Client) GetOrderWithOwner(orderID uint) (*models.Order, error) {
	var order models.Order
	err := c.db.Preload("Images").Preload("User").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (c *Client) ListOrdersForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := c.db.Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListSubmittedOrders returns submitted orders newest first with owner and
// images, for the admin review queue.
func (c *Client) ListSubmittedOrders() ([]models.Order, error) {
	var orders []models.Order
	err := c.db.Preload("Images").Preload("User").
		Where("status = ?", models.OrderStatusSubmitted).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderFields applies a partial field update to an owner's order and
// returns the refreshed record.
func (c *Client) UpdateOrderFields(orderID, userID uint, fields map[string]interface{}) (*models.Order, error) {
	if _, err := c.GetOrder(orderID, userID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		err := c.db.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(fields).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}
	return c.GetOrder(orderID, userID)
}

// SubmitOrder transitions draft → submitted and assigns the order number in a
// single conditional UPDATE. Two concurrent submits cannot both win: the
// status guard makes the second one a no-op, reported as ErrAlreadySubmitted.
func (c *Client) SubmitOrder(orderID, userID uint, orderNo string) (*models.Order, error) {
	if _, err := c.GetOrder(orderID, userID); err != nil {
		return nil, err
	}

	res := c.db.Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, models.OrderStatusDraft).
		Updates(map[string]interface{}{
			"status":   models.OrderStatusSubmitted,
			"order_no": orderNo,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to submit order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadySubmitted
	}

	return c.GetOrder(orderID, userID)
}

// RevokeOrder transitions submitted → draft, guarded on payStatus=unpaid.
// The order number is deliberately kept; a later resubmit assigns a fresh one.
func (c *Client) RevokeOrder(orderID, userID uint) (*models.Order, error) {
	order, err := c.GetOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusSubmitted {
		return nil, ErrNotSubmitted
	}

	res := c.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND pay_status = ?",
			orderID, models.OrderStatusSubmitted, models.PayStatusUnpaid).
		Update("status", models.OrderStatusDraft)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to revoke order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// The status guard already passed above, so the payment guard is
		// what stopped the update.
		return nil, ErrOrderPaid
	}

	return c.GetOrder(orderID, userID)
}

// AdminUpdateOrder applies the admin-only partial update. No state-machine
// guard: an admin may mark any order paid or delivered.
func (c *Client) AdminUpdateOrder(orderID uint, fields map[string]interface{}) (*models.Order, error) {
	if _, err := c.GetOrderWithOwner(orderID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		err := c.db.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(fields).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}
	return c.GetOrderWithOwner(orderID)
}

// --- images ---

func (c *Client) CreateImage(image *models.Image) error {
	if err := c.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (c *Client) GetImage(imageID uint) (*models.Image, error) {
	var image models.Image
	if err := c.db.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}

func (c *Client) DeleteImage(imageID uint) error {
	if err := c.db.Delete(&models.Image{}, imageID).Error; err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
