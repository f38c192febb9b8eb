// Package analytics contiene el resumen de órdenes del dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/access"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// DashboardUseCase genera el resumen según el rol del usuario.
type DashboardUseCase struct {
	orders repository.OrderRepository
	labs   repository.LaboratoryRepository
	users  repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(orders repository.OrderRepository, labs repository.LaboratoryRepository, users repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, labs: labs, users: users}
}

// GetSummary lee en paralelo órdenes, laboratorios y usuarios (estos dos solo para superadmin)
// y delega el cálculo en Summarize.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, caller *entity.User) (*dto.DashboardSummary, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	scope := access.OrderScope(actor)
	if scope.None {
		summary := Summarize(nil, nil)
		return &summary, nil
	}
	filter := repository.OrderFilter{DoctorID: scope.DoctorID, LabID: scope.LabID}
	_, isAdmin := actor.(access.SuperAdmin)
	if _, ok := actor.(access.Doctor); ok {
		notArchived := false
		filter.Archived = &notArchived
	}

	var (
		orders []*entity.Order
		labs   []*entity.Laboratory
		users  []*entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = uc.orders.List(gctx, filter)
		return err
	})
	if isAdmin {
		g.Go(func() error {
			var err error
			labs, err = uc.labs.List(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			users, err = uc.users.List(gctx, repository.UserFilter{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	names := make(map[string]string, len(labs))
	if isAdmin {
		for _, l := range labs {
			names[l.ID] = l.Name
		}
	} else {
		ids := make([]string, 0, 1)
		seen := map[string]bool{}
		for _, o := range orders {
			if !seen[o.LabID] {
				seen[o.LabID] = true
				ids = append(ids, o.LabID)
			}
		}
		names, err = uc.labs.NamesByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("dashboard: lab names: %w", err)
		}
	}

	summary := Summarize(orders, names)
	if isAdmin {
		summary.Admin = AdminSummary(labs, users)
	}
	return &summary, nil
}

// Summarize agrega órdenes: totales, conteo por estado, archivadas, ingresos y desglose por laboratorio.
// Ingresos suma solo valores no nulos. Labs queda ordenado por órdenes desc y luego por nombre.
func Summarize(orders []*entity.Order, labNames map[string]string) dto.DashboardSummary {
	out := dto.DashboardSummary{
		ByStatus: make(map[string]int, len(entity.OrderStatuses)),
		Revenue:  decimal.Zero,
		Labs:     []dto.LabOrderStats{},
	}
	for _, s := range entity.OrderStatuses {
		out.ByStatus[s] = 0
	}
	perLab := map[string]*dto.LabOrderStats{}
	for _, o := range orders {
		out.TotalOrders++
		out.ByStatus[o.Status]++
		if o.Archivado {
			out.ArchivedOrders++
		}
		stats, ok := perLab[o.LabID]
		if !ok {
			name, found := labNames[o.LabID]
			if !found {
				name = "Unknown Lab"
			}
			stats = &dto.LabOrderStats{LabID: o.LabID, LabName: name, Revenue: decimal.Zero}
			perLab[o.LabID] = stats
		}
		stats.Orders++
		if o.Value.Valid {
			out.Revenue = out.Revenue.Add(o.Value.Decimal)
			stats.Revenue = stats.Revenue.Add(o.Value.Decimal)
		}
	}
	for _, s := range perLab {
		out.Labs = append(out.Labs, *s)
	}
	sort.Slice(out.Labs, func(i, j int) bool {
		if out.Labs[i].Orders != out.Labs[j].Orders {
			return out.Labs[i].Orders > out.Labs[j].Orders
		}
		return out.Labs[i].LabName < out.Labs[j].LabName
	})
	return out
}

// AdminSummary conteos globales de laboratorios y usuarios por rol.
func AdminSummary(labs []*entity.Laboratory, users []*entity.User) *dto.AdminStats {
	st := &dto.AdminStats{
		TotalLabs: len(labs),
		UsersByRole: map[string]int{
			entity.RoleSuperAdmin:  0,
			entity.RoleLaboratorio: 0,
			entity.RoleDoctor:      0,
		},
	}
	for _, l := range labs {
		if l.Status == entity.StatusActive {
			st.ActiveLabs++
		}
	}
	for _, u := range users {
		st.UsersByRole[u.Role]++
	}
	return st
}
