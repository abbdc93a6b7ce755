package httpserver

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/mykafka"
	"github.com/tablegames/shop/internal/service"
)

type ProductHandler struct {
	Catalog   *service.CatalogService
	Producer  *mykafka.Producer
	StaticDir string
	ImagesDir string
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"products": products})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, fmt.Errorf("%w: invalid product id", service.ErrValidation))
	}

	product, err := h.Catalog.Get(c.Request().Context(), uint(id))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"product_info": product})
}

// CreateProduct reads a multipart form: name, price, stock_count,
// publisher and an optional product_image file.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	stockCount, _ := strconv.Atoi(c.FormValue("stock_count"))

	fields := service.ProductFields{
		Name:       c.FormValue("name"),
		Price:      price,
		StockCount: stockCount,
		Publisher:  c.FormValue("publisher"),
	}
	if fields.Name == "" {
		return fail(c, fmt.Errorf("%w: name required", service.ErrValidation))
	}

	if file, err := c.FormFile("product_image"); err == nil {
		filename, err := h.saveUpload(file)
		if err != nil {
			return fail(c, err)
		}
		fields.ProductImage = filename
	}

	product, err := h.Catalog.Create(c.Request().Context(), currentUser(c), fields)
	if err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return respond(c, http.StatusOK, echo.Map{"message": "success", "product": product})
}

// Restock bumps stock by the fixed single unit.
func (h *ProductHandler) Restock(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", service.ErrValidation))
	}

	if err := h.Catalog.Restock(c.Request().Context(), req.ProductID); err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{"type": "product_restocked", "product_id": req.ProductID})

	return message(c, http.StatusOK, "success")
}

func (h *ProductHandler) Search(c echo.Context) error {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: body is null", service.ErrValidation))
	}

	products, err := h.Catalog.Search(c.Request().Context(), req.Tag)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"products": products})
}

// GetImage resolves a stored filename to its served URL.
func (h *ProductHandler) GetImage(c echo.Context) error {
	return c.String(http.StatusOK, path.Join("/static", h.ImagesDir, c.Param("filename")))
}

// SetImage replaces a product's image from a multipart form.
func (h *ProductHandler) SetImage(c echo.Context) error {
	productID, err := strconv.Atoi(c.FormValue("product_id"))
	if err != nil {
		return fail(c, fmt.Errorf("%w: invalid product id", service.ErrValidation))
	}

	file, err := c.FormFile("product_image")
	if err != nil {
		return fail(c, fmt.Errorf("%w: product_image required", service.ErrValidation))
	}

	filename, err := h.saveUpload(file)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Catalog.SetImage(c.Request().Context(), uint(productID), filename); err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{"type": "product_image_set", "product_id": productID})

	return message(c, http.StatusOK, "success")
}

// saveUpload stores the file under the static images dir, prefixing the
// name with a timestamp so repeated uploads never collide.
func (h *ProductHandler) saveUpload(file *multipart.FileHeader) (string, error) {
	name := filepath.Base(file.Filename)
	name = strings.ReplaceAll(name, " ", "_")
	filename := time.Now().Format("20060102-150405.000000000") + "-" + name

	dir := filepath.Join(h.StaticDir, h.ImagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}
