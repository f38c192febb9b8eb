// Package seed carga laboratorios, cuentas y órdenes de demostración desde fixtures YAML embebidos.
// Es idempotente: laboratorios se buscan por nombre y usuarios por email.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/lifecycle"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/odontogram"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// Seeder aplica un Fixture dentro de una transacción.
type Seeder struct {
	tx  TxRunner
	log zerolog.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(tx TxRunner, log zerolog.Logger) *Seeder {
	return &Seeder{tx: tx, log: log}
}

// Run carga el fixture de kind y lo aplica.
func (s *Seeder) Run(ctx context.Context, kind Kind) (*dto.SeedResult, error) {
	f, err := LoadFixture(kind)
	if err != nil {
		return nil, err
	}
	res, err := s.Apply(ctx, f)
	if err != nil {
		return nil, err
	}
	res.Message = fmt.Sprintf("%s data initialized successfully", cases.Title(language.English).String(string(kind)))
	return res, nil
}

// Apply crea o actualiza laboratorios y usuarios y crea órdenes de demostración
// solo para doctores que aún no tienen órdenes. Todo o nada.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*dto.SeedResult, error) {
	res := &dto.SeedResult{Initialized: true, Credentials: []dto.Credential{}}
	err := s.tx.Run(ctx, func(users repository.UserRepository, labs repository.LaboratoryRepository, orders repository.OrderRepository) error {
		*res = dto.SeedResult{Initialized: true, Credentials: []dto.Credential{}}
		now := time.Now()

		labIDs := make(map[string]string, len(f.Laboratories))
		for _, lf := range f.Laboratories {
			lab, err := labs.GetByName(ctx, lf.Name)
			if err != nil {
				return err
			}
			if lab == nil {
				lab = &entity.Laboratory{
					ID:        uuid.New().String(),
					Name:      lf.Name,
					Address:   lf.Address,
					Phone:     lf.Phone,
					Email:     optional(lf.Email),
					Status:    entity.StatusActive,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := labs.Create(ctx, lab); err != nil {
					return fmt.Errorf("seed: laboratorio %q: %w", lf.Name, err)
				}
				res.LaboratoriesCreated++
			}
			labIDs[lf.Name] = lab.ID
		}

		doctors := make(map[string]*entity.User)
		for _, uf := range f.Users {
			if !entity.ValidRole(uf.Role) {
				return fmt.Errorf("seed: usuario %q: rol %q inválido", uf.Email, uf.Role)
			}
			var labID *string
			if uf.Lab != "" {
				id, ok := labIDs[uf.Lab]
				if !ok {
					return fmt.Errorf("seed: usuario %q: laboratorio %q no definido", uf.Email, uf.Lab)
				}
				labID = &id
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user, err := users.GetByEmail(ctx, uf.Email)
			if err != nil {
				return err
			}
			if user != nil {
				user.PasswordHash = string(hash)
				user.Name = uf.Name
				user.Status = entity.StatusActive
				if user.LabID == nil {
					user.LabID = labID
				}
				user.UpdatedAt = now
				if err := users.Update(ctx, user); err != nil {
					return fmt.Errorf("seed: usuario %q: %w", uf.Email, err)
				}
				res.UsersUpdated++
			} else {
				user = &entity.User{
					ID:           uuid.New().String(),
					Name:         uf.Name,
					Email:        uf.Email,
					PasswordHash: string(hash),
					Phone:        optional(uf.Phone),
					Role:         uf.Role,
					Status:       entity.StatusActive,
					LabID:        labID,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if err := users.Create(ctx, user); err != nil {
					return fmt.Errorf("seed: usuario %q: %w", uf.Email, err)
				}
				res.UsersCreated++
			}
			if user.Role == entity.RoleDoctor {
				doctors[user.Email] = user
			}
			res.Credentials = append(res.Credentials, dto.Credential{Role: uf.Role, Email: uf.Email, Password: uf.Password})
		}

		seeded := map[string]bool{}
		for i, of := range f.Orders {
			doctor, ok := doctors[of.Doctor]
			if !ok {
				return fmt.Errorf("seed: orden %d: doctor %q no definido", i+1, of.Doctor)
			}
			if doctor.LabID == nil {
				return fmt.Errorf("seed: orden %d: doctor %q sin laboratorio", i+1, of.Doctor)
			}
			if _, checked := seeded[doctor.ID]; !checked {
				n, err := orders.CountByDoctor(ctx, doctor.ID)
				if err != nil {
					return err
				}
				seeded[doctor.ID] = n == 0
			}
			if !seeded[doctor.ID] {
				continue
			}
			order, err := buildOrder(of, doctor, now)
			if err != nil {
				return fmt.Errorf("seed: orden %d: %w", i+1, err)
			}
			if err := orders.Create(ctx, order); err != nil {
				return fmt.Errorf("seed: orden %d: %w", i+1, err)
			}
			res.OrdersCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("users_created", res.UsersCreated).
		Int("users_updated", res.UsersUpdated).
		Int("labs_created", res.LaboratoriesCreated).
		Int("orders_created", res.OrdersCreated).
		Msg("seed applied")
	return res, nil
}

func buildOrder(of OrderFixture, doctor *entity.User, now time.Time) (*entity.Order, error) {
	status := of.Status
	if status == "" {
		status = entity.OrderPendiente
	}
	if !lifecycle.Valid(status) {
		return nil, fmt.Errorf("estado %q inválido", status)
	}
	if err := odontogram.Validate(of.Odontograma); err != nil {
		return nil, err
	}
	var value decimal.NullDecimal
	if of.Value != "" {
		v, err := decimal.NewFromString(of.Value)
		if err != nil {
			return nil, fmt.Errorf("valor %q: %w", of.Value, err)
		}
		value = decimal.NullDecimal{Decimal: v, Valid: true}
	}
	progress := of.Progress
	if progress == "" {
		progress = "0"
	}
	doctorID := doctor.ID
	return &entity.Order{
		ID:                 uuid.New().String(),
		DoctorID:           &doctorID,
		LabID:              *doctor.LabID,
		Status:             status,
		Value:              value,
		Services:           of.Services,
		Odontograma:        of.Odontograma,
		NombrePaciente:     of.NombrePaciente,
		Observaciones:      of.Observaciones,
		Instrucciones:      of.Instrucciones,
		ColorSustrato:      of.ColorSustrato,
		ColorTrabajo:       of.ColorTrabajo,
		Material:           of.Material,
		ProgressPercentage: progress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
