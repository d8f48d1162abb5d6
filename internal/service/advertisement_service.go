package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/model/dto"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/inflight"
	"github.com/qs3c/travelmart_server/internal/pkg/lifecycle"
	"github.com/qs3c/travelmart_server/internal/pkg/metrics"
	"github.com/qs3c/travelmart_server/internal/pkg/pubsub"
	"github.com/qs3c/travelmart_server/internal/repository"
)

var (
	ErrAdvertisementNotFound = errors.New("advertisement not found")
	ErrNotAdvertisementOwner = errors.New("you do not have access to this advertisement")
	ErrActionNotAllowed      = errors.New("this action is not available for the advertisement right now")
	ErrActionInFlight        = inflight.ErrInFlight
	ErrInvalidPlan           = errors.New("invalid plan")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrPlanMismatch          = errors.New("renewal must use the plan chosen at purchase")
	ErrEmptyPublishedAdID    = errors.New("published listing id is required")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	renewalPathFmt  = "/renew-advertisement/%d"
	failedBanner    = "action failed"
)

var defaultPlans = map[string]config.PlanConfig{
	model.PlanHourly:  {Price: 1.5, DurationHours: 1},
	model.PlanDaily:   {Price: 20, DurationHours: 24},
	model.PlanMonthly: {Price: 300, DurationHours: 720},
	model.PlanYearly:  {Price: 2500, DurationHours: 8760},
}

// EventPublisher 广告位变更通知
type EventPublisher interface {
	Publish(ctx context.Context, evt *pubsub.AdvertisementEvent) error
}

type AdvertisementService struct {
	adRepo       *repository.AdvertisementRepository
	agentService *AgentService
	routes       *category.Table
	tracker      inflight.Tracker
	events       EventPublisher
	cfg          *config.Config
	now          func() time.Time
}

func NewAdvertisementService(
	adRepo *repository.AdvertisementRepository,
	agentService *AgentService,
	routes *category.Table,
	tracker inflight.Tracker,
	events EventPublisher,
	cfg *config.Config,
) *AdvertisementService {
	return &AdvertisementService{
		adRepo:       adRepo,
		agentService: agentService,
		routes:       routes,
		tracker:      tracker,
		events:       events,
		cfg:          cfg,
		now:          time.Now,
	}
}

// List 获取当前用户的广告位列表
func (s *AdvertisementService) List(userID int64, q *dto.ListAdvertisementsQuery) (*dto.ListAdvertisementsResponse, error) {
	if q.Status != "" && !model.IsValidAdStatus(q.Status) {
		return nil, ErrInvalidStatusFilter
	}
	if q.Plan != "" && !model.IsValidPlan(q.Plan) {
		return nil, ErrInvalidPlan
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	now := s.now()
	ads, total, err := s.adRepo.ListByUserID(userID, repository.AdvertisementFilter{
		Page:     page,
		Limit:    limit,
		Search:   q.Search,
		Status:   q.Status,
		Plan:     q.Plan,
		Category: q.Category,
	}, now)
	if err != nil {
		return nil, err
	}

	categories, err := s.adRepo.DistinctCategories(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AdvertisementItem, 0, len(ads))
	for _, ad := range ads {
		items = append(items, s.buildItem(ad, now))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	options := make([]dto.FilterOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, dto.FilterOption{Value: c, Label: s.routes.DisplayName(c)})
	}

	return &dto.ListAdvertisementsResponse{
		Advertisements: items,
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
		FilterOptions: dto.FilterOptions{
			Categories: options,
			Statuses:   model.AdStatuses,
			Plans:      model.AdPlans,
		},
	}, nil
}

// Get 获取单个广告位
func (s *AdvertisementService) Get(userID, id int64) (*dto.AdvertisementItem, error) {
	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return s.buildItem(ad, s.now()), nil
}

// PauseExpiration 暂停计时，已暂停时不做任何写入
func (s *AdvertisementService) PauseExpiration(ctx context.Context, userID, id int64) (*dto.AdvertisementItem, error) {
	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eval := lifecycle.Evaluate(ad, now)
	if eval.Phase == lifecycle.PhaseActivePaused {
		return s.buildItem(ad, now), nil
	}
	if !eval.Allows(lifecycle.ActionPauseExpiration) {
		metrics.ObserveAction(string(lifecycle.ActionPauseExpiration), metrics.OutcomeRejected)
		return nil, ErrActionNotAllowed
	}

	err = s.run(ctx, ad, lifecycle.ActionPauseExpiration, func() error {
		_, err := s.adRepo.PauseExpiration(ad.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	ad.ExpiresAt = nil
	item := s.buildItem(ad, now)
	s.publishUpdate(ctx, ad, lifecycle.ActionPauseExpiration, item.Phase)
	return item, nil
}

// Publish 返回分类发布表单的地址，不修改记录
func (s *AdvertisementService) Publish(userID, id int64) (*dto.NavigationResponse, error) {
	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.Evaluate(ad, s.now()).Allows(lifecycle.ActionPublish) {
		return nil, ErrActionNotAllowed
	}

	path, err := s.routes.Resolve(ad.Category, category.KindPublish, nil)
	if err != nil {
		return nil, err
	}

	return &dto.NavigationResponse{
		Action:   lifecycle.ActionPublish,
		Category: ad.Category,
		Path:     path,
	}, nil
}

// CompletePublish 发布表单提交成功后关联已发布实体
func (s *AdvertisementService) CompletePublish(ctx context.Context, userID, id int64, publishedAdID string) (*dto.AdvertisementItem, error) {
	publishedAdID = strings.TrimSpace(publishedAdID)
	if publishedAdID == "" {
		return nil, ErrEmptyPublishedAdID
	}

	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !lifecycle.Evaluate(ad, now).Allows(lifecycle.ActionPublish) {
		metrics.ObserveAction(string(lifecycle.ActionPublish), metrics.OutcomeRejected)
		return nil, ErrActionNotAllowed
	}
	// 没有路由的分类发布后无法管理/查看
	if entry, ok := s.routes.Lookup(ad.Category); !ok || !entry.Supported() {
		metrics.ObserveAction(string(lifecycle.ActionPublish), metrics.OutcomeRejected)
		return nil, category.ErrUnsupportedCategory
	}

	err = s.run(ctx, ad, lifecycle.ActionPublish, func() error {
		return s.adRepo.MarkPublished(ad.ID, publishedAdID, now)
	})
	if err != nil {
		return nil, err
	}

	ad.Status = model.AdStatusPublished
	ad.PublishedAdID = &publishedAdID
	ad.PublishedAt = &now
	item := s.buildItem(ad, now)
	s.publishUpdate(ctx, ad, lifecycle.ActionPublish, item.Phase)
	return item, nil
}

// Navigate 管理/查看已发布实体
func (s *AdvertisementService) Navigate(userID, id int64, action lifecycle.Action) (*dto.NavigationResponse, error) {
	var kind category.Kind
	switch action {
	case lifecycle.ActionManage:
		kind = category.KindManage
	case lifecycle.ActionView:
		kind = category.KindView
	default:
		return nil, ErrActionNotAllowed
	}

	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.Evaluate(ad, s.now()).Allows(action) {
		return nil, ErrActionNotAllowed
	}

	path, err := s.routes.Resolve(ad.Category, kind, ad.PublishedAdID)
	if err != nil {
		return nil, err
	}

	return &dto.NavigationResponse{
		Action:   action,
		Category: ad.Category,
		Path:     path,
	}, nil
}

// RenewalHandoff 交给续费流程，携带 renew / expired 来源标记
func (s *AdvertisementService) RenewalHandoff(userID, id int64) (*dto.RenewalHandoffResponse, error) {
	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eval := lifecycle.Evaluate(ad, now)
	if !eval.Allows(renewAction(eval.Phase)) {
		return nil, ErrActionNotAllowed
	}

	return &dto.RenewalHandoffResponse{
		RenewalType:   lifecycle.RenewalType(eval.Phase),
		Advertisement: s.buildItem(ad, now),
		Path:          fmt.Sprintf(renewalPathFmt, ad.ID),
	}, nil
}

// Renew 完成续费：新到期时间 = max(now, expiresAt) + 套餐时长
func (s *AdvertisementService) Renew(ctx context.Context, userID, id int64, req *dto.RenewRequest) (*dto.PurchaseResponse, error) {
	ad, err := s.loadOwned(userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eval := lifecycle.Evaluate(ad, now)
	action := renewAction(eval.Phase)
	if !eval.Allows(action) {
		metrics.ObserveAction(string(action), metrics.OutcomeRejected)
		return nil, ErrActionNotAllowed
	}

	// 套餐在购买时确定，续费沿用
	if req.Plan != "" {
		if !model.IsValidPlan(req.Plan) {
			return nil, ErrInvalidPlan
		}
		if req.Plan != ad.SelectedPlan {
			return nil, ErrPlanMismatch
		}
	}

	q, err := s.quote(userID, ad.SelectedPlan, req.PromoCode)
	if err != nil {
		return nil, err
	}

	base := now
	if ad.ExpiresAt != nil && ad.ExpiresAt.After(now) {
		base = *ad.ExpiresAt
	}
	expiresAt := base.Add(q.duration)

	status := ad.Status
	if eval.Phase == lifecycle.PhaseExpired {
		status = model.AdStatusActive
		if ad.PublishedAdID != nil && *ad.PublishedAdID != "" {
			status = model.AdStatusPublished
		}
	}

	// 购买信息（套餐、金额、支付方式、推广码）不随续费改写
	fields := map[string]interface{}{
		"expires_at":       expiresAt,
		"status":           status,
		"reminder_sent_at": gorm.Expr("NULL"),
	}

	err = s.run(ctx, ad, action, func() error {
		return s.adRepo.UpdateFields(ad.ID, fields)
	})
	if err != nil {
		return nil, err
	}

	s.recordReferral(q)

	ad.ExpiresAt = &expiresAt
	ad.Status = status
	ad.ReminderSentAt = nil

	item := s.buildItem(ad, now)
	s.publishUpdate(ctx, ad, action, item.Phase)
	return &dto.PurchaseResponse{Advertisement: item, Pricing: q.pricing}, nil
}

// Purchase 购买新的广告位
func (s *AdvertisementService) Purchase(ctx context.Context, userID int64, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if !s.routes.Contains(req.Category) {
		return nil, ErrInvalidCategory
	}

	q, err := s.quote(userID, req.Plan, req.PromoCode)
	if err != nil {
		return nil, err
	}

	slotID, err := s.generateSlotID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(q.duration)
	ad := &model.Advertisement{
		UserID:        userID,
		SlotID:        slotID,
		Category:      req.Category,
		Status:        model.AdStatusActive,
		SelectedPlan:  req.Plan,
		ExpiresAt:     &expiresAt,
		FinalAmount:   q.final,
		PaymentMethod: req.PaymentMethod,
	}
	if q.promo != nil {
		code := q.promo.Code
		ad.UsedPromoCode = &code
	}

	if err := s.adRepo.Create(ad); err != nil {
		metrics.ObserveAction("purchase", metrics.OutcomeFailed)
		return nil, err
	}
	metrics.ObserveAction("purchase", metrics.OutcomeSuccess)

	s.recordReferral(q)

	item := s.buildItem(ad, now)
	s.publishUpdate(ctx, ad, "purchase", item.Phase)
	return &dto.PurchaseResponse{Advertisement: item, Pricing: q.pricing}, nil
}

// exportRow CSV 导出行
type exportRow struct {
	SlotID        string `csv:"slot_id"`
	Category      string `csv:"category"`
	CategoryName  string `csv:"category_name"`
	Status        string `csv:"status"`
	Phase         string `csv:"phase"`
	Plan          string `csv:"plan"`
	ExpiresAt     string `csv:"expires_at"`
	PublishedAdID string `csv:"published_ad_id"`
	FinalAmount   string `csv:"final_amount"`
	PaymentMethod string `csv:"payment_method"`
	PromoCode     string `csv:"promo_code"`
	CreatedAt     string `csv:"created_at"`
}

// Export 导出当前用户全部广告位为 CSV
func (s *AdvertisementService) Export(userID int64) ([]byte, error) {
	ads, err := s.adRepo.ListAllByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]exportRow, 0, len(ads))
	for _, ad := range ads {
		row := exportRow{
			SlotID:        ad.SlotID,
			Category:      ad.Category,
			CategoryName:  s.routes.DisplayName(ad.Category),
			Status:        ad.Status,
			Phase:         string(lifecycle.PhaseOf(ad, now)),
			Plan:          ad.SelectedPlan,
			FinalAmount:   ad.FinalAmount.StringFixed(2),
			PaymentMethod: ad.PaymentMethod,
			CreatedAt:     ad.CreatedAt.UTC().Format(time.RFC3339),
		}
		if ad.ExpiresAt != nil {
			row.ExpiresAt = ad.ExpiresAt.UTC().Format(time.RFC3339)
		}
		if ad.PublishedAdID != nil {
			row.PublishedAdID = *ad.PublishedAdID
		}
		if ad.UsedPromoCode != nil {
			row.PromoCode = *ad.UsedPromoCode
		}
		rows = append(rows, row)
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return data, nil
}

// ActionState 查询单条记录的操作状态
func (s *AdvertisementService) ActionState(ctx context.Context, userID, id int64) (*dto.ActionStateResponse, error) {
	if _, err := s.loadOwned(userID, id); err != nil {
		return nil, err
	}

	state, err := s.tracker.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ActionStateResponse{AdvertisementID: id, State: state}, nil
}

// run 在操作锁内执行写入。失败时记录 Failed 状态，记录本身保持不变
func (s *AdvertisementService) run(ctx context.Context, ad *model.Advertisement, action lifecycle.Action, write func() error) error {
	if err := s.tracker.Begin(ctx, ad.ID, string(action)); err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			metrics.ObserveAction(string(action), metrics.OutcomeRejected)
		}
		return err
	}

	if err := write(); err != nil {
		if ferr := s.tracker.Fail(ctx, ad.ID, string(action), err); ferr != nil {
			log.Printf("Failed to record failed state for advertisement %d: %v", ad.ID, ferr)
		}
		metrics.ObserveAction(string(action), metrics.OutcomeFailed)
		log.Printf("Advertisement %d %s failed: %v", ad.ID, action, err)
		s.publish(ctx, &pubsub.AdvertisementEvent{
			Type:            pubsub.EventActionFailed,
			UserID:          ad.UserID,
			AdvertisementID: ad.ID,
			Action:          string(action),
			Error:           failedBanner,
		})
		return fmt.Errorf("%s advertisement %d: %w", action, ad.ID, err)
	}

	if err := s.tracker.Succeed(ctx, ad.ID); err != nil {
		log.Printf("Failed to release action lock for advertisement %d: %v", ad.ID, err)
	}
	metrics.ObserveAction(string(action), metrics.OutcomeSuccess)
	return nil
}

func (s *AdvertisementService) loadOwned(userID, id int64) (*model.Advertisement, error) {
	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}
	if ad.UserID != userID {
		return nil, ErrNotAdvertisementOwner
	}
	return ad, nil
}

type quote struct {
	pricing  dto.Pricing
	promo    *model.AgentPromoCode
	final    decimal.Decimal
	duration time.Duration
}

// quote 计算套餐价格和推广码折扣
func (s *AdvertisementService) quote(buyerID int64, plan, promoCode string) (*quote, error) {
	if !model.IsValidPlan(plan) {
		return nil, ErrInvalidPlan
	}
	pc, ok := s.cfg.Advertisement.Plans[plan]
	if !ok {
		pc, ok = defaultPlans[plan]
	}
	if !ok || pc.DurationHours <= 0 {
		return nil, ErrInvalidPlan
	}

	q := &quote{duration: time.Duration(pc.DurationHours) * time.Hour}
	base := decimal.NewFromFloat(pc.Price).Round(2)
	discount := decimal.Zero
	percent := 0

	if promoCode != "" {
		promo, err := s.agentService.Resolve(buyerID, promoCode)
		if err != nil {
			return nil, err
		}
		q.promo = promo
		percent = promo.DiscountPercent
		discount = base.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
	}

	q.final = base.Sub(discount)
	q.pricing = dto.Pricing{
		Plan:            plan,
		BasePrice:       base.StringFixed(2),
		DiscountPercent: percent,
		DiscountAmount:  discount.StringFixed(2),
		FinalAmount:     q.final.StringFixed(2),
	}
	if q.promo != nil {
		q.pricing.PromoCode = q.promo.Code
	}
	return q, nil
}

func (s *AdvertisementService) recordReferral(q *quote) {
	if q.promo == nil {
		return
	}
	if err := s.agentService.RecordReferral(q.promo, q.final); err != nil {
		log.Printf("Failed to record referral for promo code %s: %v", q.promo.Code, err)
	}
}

// generateSlotID AD + 8 位数字
func (s *AdvertisementService) generateSlotID() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(100000000))
		if err != nil {
			return "", err
		}
		slotID := fmt.Sprintf("AD%08d", n.Int64())

		exists, err := s.adRepo.ExistsBySlotID(slotID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slotID, nil
		}
	}
	return "", errors.New("failed to generate a unique slot id")
}

func (s *AdvertisementService) publishUpdate(ctx context.Context, ad *model.Advertisement, action lifecycle.Action, phase lifecycle.Phase) {
	s.publish(ctx, &pubsub.AdvertisementEvent{
		Type:            pubsub.EventAdvertisementUpdated,
		UserID:          ad.UserID,
		AdvertisementID: ad.ID,
		Action:          string(action),
		Status:          ad.Status,
		Phase:           string(phase),
		ExpiresAt:       ad.ExpiresAt,
		PublishedAdID:   ad.PublishedAdID,
	})
}

func (s *AdvertisementService) publish(ctx context.Context, evt *pubsub.AdvertisementEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		log.Printf("Failed to publish advertisement event: %v", err)
	}
}

func (s *AdvertisementService) buildItem(ad *model.Advertisement, now time.Time) *dto.AdvertisementItem {
	eval := lifecycle.Evaluate(ad, now)
	return &dto.AdvertisementItem{
		ID:            ad.ID,
		SlotID:        ad.SlotID,
		Category:      ad.Category,
		CategoryName:  s.routes.DisplayName(ad.Category),
		Status:        ad.Status,
		SelectedPlan:  ad.SelectedPlan,
		ExpiresAt:     ad.ExpiresAt,
		PublishedAdID: ad.PublishedAdID,
		PublishedAt:   ad.PublishedAt,
		FinalAmount:   ad.FinalAmount.StringFixed(2),
		PaymentMethod: ad.PaymentMethod,
		UsedPromoCode: ad.UsedPromoCode,
		CreatedAt:     ad.CreatedAt,
		UpdatedAt:     ad.UpdatedAt,
		Phase:         eval.Phase,
		IsExpired:     eval.Expired,
		Actions:       eval.Actions,
	}
}

func renewAction(phase lifecycle.Phase) lifecycle.Action {
	if phase == lifecycle.PhaseExpired {
		return lifecycle.ActionRenewExpired
	}
	return lifecycle.ActionRenew
}
