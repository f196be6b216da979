package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupArtisanServiceTest(t *testing.T) (*ArtisanService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:artisan_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.ArtisanProfile{}, &models.ArtisanDocument{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewArtisanService(repository.NewArtisanRepository(db)), db
}

func TestArtisanApplyCreatesPendingProfile(t *testing.T) {
	svc, db := setupArtisanServiceTest(t)

	profile, err := svc.Apply(ApplyInput{
		CustomerID: 1,
		ShopName:   "Kente Loom Works",
		Bio:        "Hand-woven kente from Bonwire.",
		Region:     "Ashanti",
		Documents: []ArtisanDocumentInput{
			{Kind: constants.ArtisanDocumentKindID, URL: "https://files.example.com/id.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if profile.Status != constants.ArtisanStatusPending {
		t.Fatalf("expected pending status, got %s", profile.Status)
	}

	var docCount int64
	if err := db.Model(&models.ArtisanDocument{}).Where("artisan_id = ?", profile.ID).Count(&docCount).Error; err != nil {
		t.Fatalf("count documents failed: %v", err)
	}
	if docCount != 1 {
		t.Fatalf("expected 1 document, got %d", docCount)
	}
}

func TestArtisanApplyRejectsBlankShopName(t *testing.T) {
	svc, _ := setupArtisanServiceTest(t)

	if _, err := svc.Apply(ApplyInput{CustomerID: 1, ShopName: "   "}); !errors.Is(err, ErrArtisanInvalid) {
		t.Fatalf("expected ErrArtisanInvalid, got %v", err)
	}
}

func TestArtisanApplyOnePerCustomer(t *testing.T) {
	svc, _ := setupArtisanServiceTest(t)

	if _, err := svc.Apply(ApplyInput{CustomerID: 2, ShopName: "Adinkra Prints"}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := svc.Apply(ApplyInput{CustomerID: 2, ShopName: "Adinkra Prints Again"}); !errors.Is(err, ErrArtisanExists) {
		t.Fatalf("expected ErrArtisanExists, got %v", err)
	}
}

func TestArtisanRejectedMayResubmit(t *testing.T) {
	svc, _ := setupArtisanServiceTest(t)

	profile, err := svc.Apply(ApplyInput{CustomerID: 3, ShopName: "Bolga Baskets"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	rejected, err := svc.Review(profile.ID, false, "documents unreadable")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if rejected.Status != constants.ArtisanStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	resubmitted, err := svc.Apply(ApplyInput{
		CustomerID: 3,
		ShopName:   "Bolga Baskets",
		Documents: []ArtisanDocumentInput{
			{Kind: constants.ArtisanDocumentKindID, URL: "https://files.example.com/id-v2.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.ID != profile.ID {
		t.Fatalf("expected the same profile row, got %d and %d", profile.ID, resubmitted.ID)
	}
	if resubmitted.Status != constants.ArtisanStatusPending {
		t.Fatalf("expected pending after resubmit, got %s", resubmitted.Status)
	}
}

func TestArtisanReviewApprove(t *testing.T) {
	svc, _ := setupArtisanServiceTest(t)

	profile, err := svc.Apply(ApplyInput{CustomerID: 4, ShopName: "Krobo Beads"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	approved, err := svc.Review(profile.ID, true, "looks good")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if approved.Status != constants.ArtisanStatusVerified {
		t.Fatalf("expected verified, got %s", approved.Status)
	}
	if approved.ReviewedAt == nil {
		t.Fatalf("expected reviewed_at set")
	}
	if approved.ReviewNote != "looks good" {
		t.Fatalf("unexpected review note: %s", approved.ReviewNote)
	}

	// A settled application cannot be reviewed twice.
	if _, err := svc.Review(profile.ID, false, "changed my mind"); !errors.Is(err, ErrArtisanReviewed) {
		t.Fatalf("expected ErrArtisanReviewed, got %v", err)
	}
}

func TestArtisanGetByCustomerLoadsDocuments(t *testing.T) {
	svc, _ := setupArtisanServiceTest(t)

	created, err := svc.Apply(ApplyInput{
		CustomerID: 5,
		ShopName:   "Wulomei Drums",
		Documents: []ArtisanDocumentInput{
			{Kind: constants.ArtisanDocumentKindID, URL: "https://files.example.com/a.jpg"},
			{Kind: constants.ArtisanDocumentKindCertificate, URL: "https://files.example.com/b.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	got, err := svc.GetByCustomer(5)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected profile: %d", got.ID)
	}
	if len(got.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got.Documents))
	}
}
