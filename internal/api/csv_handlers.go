package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matthewp/lodge/internal/models"
)

// handleExportCSV streams a collection's items as CSV. Meta columns are
// prefixed with an underscore; field columns follow the schema order.
func (s *Server) handleExportCSV(c *gin.Context) {
	collection := s.collectionFromParam(c, "collectionId")
	if collection == nil {
		return
	}

	fields, err := s.db.GetCollectionFields(collection.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to get collection fields")
		return
	}

	statusFilter := c.Query("status")
	items, err := s.db.GetItemsByCollection(collection.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to get items")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", collection.Slug+"-export.csv"))

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	headers := []string{"_id", "_slug", "_status", "_created_at", "_updated_at"}
	for _, field := range fields {
		headers = append(headers, field.Name)
	}
	if err := w.Write(headers); err != nil {
		log.Printf("Error writing CSV headers: %v", err)
		return
	}

	for i := range items {
		item := &items[i]
		if statusFilter != "" && item.Status != statusFilter {
			continue
		}

		row := []string{
			strconv.Itoa(item.ID),
			item.Slug.String,
			item.Status,
			item.CreatedAt.Format(time.RFC3339),
			item.UpdatedAt.Format(time.RFC3339),
		}

		var data map[string]interface{}
		if err := json.Unmarshal([]byte(item.Data), &data); err != nil {
			log.Printf("Error parsing item data for ID %d: %v", item.ID, err)
			for range fields {
				row = append(row, "")
			}
		} else {
			for _, field := range fields {
				row = append(row, csvFieldValue(field, data[field.Name]))
			}
		}

		if err := w.Write(row); err != nil {
			log.Printf("Error writing CSV row: %v", err)
			return
		}
	}
}

func csvFieldValue(field models.CollectionField, value interface{}) string {
	if value == nil {
		return ""
	}
	switch field.Type {
	case "boolean":
		if b, ok := value.(bool); ok {
			return strconv.FormatBool(b)
		}
	case "number":
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	default:
		// text, textarea, markdown, email, url, date - all strings
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// handleImportCSV ingests a CSV upload into a collection. Mode
// "create_only" skips rows whose _id already exists; "upsert" updates them.
func (s *Server) handleImportCSV(c *gin.Context) {
	collection := s.collectionFromParam(c, "collectionId")
	if collection == nil {
		return
	}

	fields, err := s.db.GetCollectionFields(collection.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to get collection fields")
		return
	}
	fieldMap := make(map[string]*models.CollectionField, len(fields))
	for i := range fields {
		fieldMap[fields[i].Name] = &fields[i]
	}

	file, err := c.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to get file from form")
		return
	}
	importMode := c.PostForm("mode")
	if importMode == "" {
		importMode = "create_only"
	}

	f, err := file.Open()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to open uploaded file")
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to read CSV headers")
		return
	}

	var successCount, errorCount, skippedCount int
	var importErrors []string
	rowNumber := 1

	for {
		rowNumber++
		record, err := reader.Read()
		if err == io.EOF {
			rowNumber--
			break
		}
		if err != nil {
			importErrors = append(importErrors, fmt.Sprintf("Row %d: Failed to read - %v", rowNumber, err))
			errorCount++
			continue
		}

		itemData := make(map[string]interface{})
		var itemID int
		var itemSlug, itemStatus string
		rowFailed := false

		for i, header := range headers {
			if i >= len(record) {
				break
			}
			value := record[i]

			switch {
			case header == "_id":
				if value != "" {
					itemID, _ = strconv.Atoi(value)
				}
			case header == "_slug":
				itemSlug = value
			case header == "_status":
				itemStatus = value
				if itemStatus == "" {
					itemStatus = "draft"
				}
			case strings.HasPrefix(header, "_"):
				// other meta columns are ignored
			default:
				field, exists := fieldMap[header]
				if !exists {
					continue
				}
				if value == "" {
					if field.Required {
						importErrors = append(importErrors, fmt.Sprintf("Row %d: Required field '%s' is empty", rowNumber, header))
						rowFailed = true
					}
					continue
				}

				switch field.Type {
				case "boolean":
					itemData[header] = value == "true" || value == "1" || value == "yes" || value == "on"
				case "number":
					floatVal, err := strconv.ParseFloat(value, 64)
					if err != nil {
						importErrors = append(importErrors, fmt.Sprintf("Row %d: Invalid number for field '%s'", rowNumber, header))
						rowFailed = true
						continue
					}
					itemData[header] = floatVal
				default:
					itemData[header] = value
				}
			}
		}

		if rowFailed {
			errorCount++
			continue
		}
		if itemStatus == "" {
			itemStatus = "draft"
		}

		if importMode == "create_only" && itemID > 0 {
			if existing, _ := s.db.GetItem(itemID); existing != nil {
				skippedCount++
				continue
			}
		}

		dataJSON, err := json.Marshal(itemData)
		if err != nil {
			importErrors = append(importErrors, fmt.Sprintf("Row %d: Failed to encode data", rowNumber))
			errorCount++
			continue
		}

		if importMode == "upsert" && itemID > 0 {
			if err := s.db.UpdateItem(itemID, itemSlug, string(dataJSON), itemStatus); err != nil {
				importErrors = append(importErrors, fmt.Sprintf("Row %d: Failed to update item - %v", rowNumber, err))
				errorCount++
				continue
			}
		} else {
			if _, err := s.db.CreateItem(collection.ID, itemSlug, string(dataJSON), itemStatus, currentUser(c).ID); err != nil {
				importErrors = append(importErrors, fmt.Sprintf("Row %d: Failed to create item - %v", rowNumber, err))
				errorCount++
				continue
			}
		}
		successCount++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       successCount,
		"errors":        errorCount,
		"skipped":       skippedCount,
		"totalRows":     rowNumber - 1,
		"errorMessages": importErrors,
	})
}
