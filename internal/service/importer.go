package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/magscene/magsav/internal/csvimport"
	"github.com/magscene/magsav/internal/entity"
)

// Import creates one record per data row. Rows are independent: a rejected
// row is reported and the following rows are still imported.
func (s *Service) Import(ctx context.Context, t csvimport.Type, table csvimport.Table) (entity.ImportResult, error) {
	err := csvimport.Validate(table, t)
	if err != nil {
		return entity.ImportResult{}, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}

	result := entity.ImportResult{
		Type:   string(t),
		Total:  len(table.Rows),
		Errors: make([]entity.RowError, 0),
	}

	for i := range table.Rows {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		err = s.importRow(ctx, t, table.Row(i))
		if err != nil {
			if !errors.Is(err, entity.ErrValidation) && !errors.Is(err, entity.ErrAlreadyExists) {
				return result, fmt.Errorf("import row %d: %w", i+2, err)
			}

			result.Errors = append(result.Errors, entity.RowError{Row: i + 2, Message: err.Error()})

			continue
		}

		result.Created++
	}

	slog.InfoContext(ctx, "csv imported",
		slog.String("type", string(t)),
		slog.Int("total", result.Total),
		slog.Int("created", result.Created))

	return result, nil
}

func (s *Service) importRow(ctx context.Context, t csvimport.Type, row map[string]string) error {
	var err error

	switch t {
	case csvimport.TypeClients:
		_, err = s.Clients.Create(ctx, clientFields(row))
	case csvimport.TypeSuppliers:
		_, err = s.Suppliers.Create(ctx, supplierFields(row))
	case csvimport.TypeServiceOrders:
		var fields map[string]any

		fields, err = s.serviceOrderFields(ctx, row)
		if err == nil {
			_, err = s.ServiceRequests.Create(ctx, fields)
		}
	case csvimport.TypeProducts:
		var fields map[string]any

		fields, err = productFields(row)
		if err == nil {
			_, err = s.Equipment.Create(ctx, fields)
		}
	default:
		err = fmt.Errorf("%w: %s", csvimport.ErrUnknownType, t)
	}

	return err
}

// setOptional stores value under key unless it is blank.
func setOptional(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

func clientFields(row map[string]string) map[string]any {
	fields := map[string]any{
		"name": strings.TrimSpace(row["nom"] + " " + row["prenom"]),
	}

	setOptional(fields, "phone", row["telephone"])
	setOptional(fields, "email", row["email"])
	setOptional(fields, "address", row["adresse"])
	setOptional(fields, "city", row["ville"])
	setOptional(fields, "postalCode", row["code_postal"])

	return fields
}

func supplierFields(row map[string]string) map[string]any {
	fields := map[string]any{"name": row["nom"]}

	setOptional(fields, "contact", row["contact"])
	setOptional(fields, "phone", row["telephone"])
	setOptional(fields, "email", row["email"])
	setOptional(fields, "address", row["adresse"])

	return fields
}

func (s *Service) serviceOrderFields(ctx context.Context, row map[string]string) (map[string]any, error) {
	device := strings.TrimSpace(row["appareil_marque"] + " " + row["appareil_modele"])

	fields := map[string]any{
		"title": row["symptome"],
	}

	if device != "" {
		fields["description"] = "Appareil: " + device
	}

	if status := entity.ServiceRequestStatus(strings.ToUpper(row["statut"])); status.IsValid() {
		fields["status"] = status
	}

	if name := row["client_nom"]; name != "" {
		clients, err := s.Clients.List(ctx, entity.ListFilter{Search: name, Limit: 10})
		if err != nil {
			return nil, err
		}

		for _, c := range clients {
			if strings.EqualFold(c.Name, name) {
				fields["clientId"] = c.ID
				break
			}
		}
	}

	return fields, nil
}

func productFields(row map[string]string) (map[string]any, error) {
	verr := &entity.ValidationError{}

	fields := map[string]any{"name": row["nom"]}

	setOptional(fields, "brand", row["marque"])
	setOptional(fields, "model", row["modele"])

	if price := strings.ReplaceAll(row["prix"], ",", "."); price != "" {
		fields["purchasePrice"] = price
	}

	if stock := row["stock"]; stock != "" {
		n, err := strconv.Atoi(stock)
		if err != nil {
			verr.Add("stock", msgInvalid)
		}

		fields["stock"] = n
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	return fields, nil
}
