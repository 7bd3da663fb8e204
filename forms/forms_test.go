package forms

import (
	"testing"

	"garagehub/models"
)

func offered() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: "time-9", Time: "9:00", Available: true},
		{ID: "time-10", Time: "10:00", Available: false},
		{ID: "time-11", Time: "11:00", Available: true},
	}
}

func validBooking() BookingForm {
	return BookingForm{
		Name:        "Nguyễn Văn A",
		Phone:       "0912345678",
		VehicleType: "Ô tô",
		Issue:       "Xe không nổ máy",
		Time:        "9:00",
	}
}

func TestValidBookingFormPasses(t *testing.T) {
	errs := validBooking().Validate(models.ShopTypeFixed, offered())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestPhoneValidation(t *testing.T) {
	f := validBooking()

	f.Phone = "0912345678"
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["phone"] != "" {
		t.Errorf("10 digits should pass, got %q", errs["phone"])
	}

	f.Phone = "091234567"
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["phone"] != "Số điện thoại không hợp lệ" {
		t.Errorf("9 digits should fail with the pattern message, got %q", errs["phone"])
	}

	f.Phone = ""
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["phone"] != "Vui lòng nhập số điện thoại" {
		t.Errorf("empty phone should fail with the required message, got %q", errs["phone"])
	}
}

func TestNameRequired(t *testing.T) {
	f := validBooking()
	f.Name = "   "
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["name"] == "" {
		t.Fatal("whitespace name should fail")
	}
}

func TestVehicleTypeMustBeEnumerated(t *testing.T) {
	f := validBooking()

	f.VehicleType = "Xe đạp"
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["vehicleType"] == "" {
		t.Error("unknown vehicle type should fail")
	}

	f.VehicleType = ""
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["vehicleType"] == "" {
		t.Error("missing vehicle type should fail")
	}

	f.VehicleType = "Xe máy"
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["vehicleType"] != "" {
		t.Error("Xe máy is a valid vehicle type")
	}
}

func TestTimeSlotMustBeOfferedAndAvailable(t *testing.T) {
	f := validBooking()

	f.Time = "10:00" // offered but full
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["time"] == "" {
		t.Error("a full slot must not validate")
	}

	f.Time = "15:00" // never offered
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["time"] == "" {
		t.Error("a slot that was never offered must not validate")
	}

	f.Time = ""
	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["time"] == "" {
		t.Error("missing slot must not validate")
	}
}

func TestAddressRequiredOnlyForMobileShops(t *testing.T) {
	f := validBooking()
	f.Address = ""

	if errs := f.Validate(models.ShopTypeFixed, offered()); errs["address"] != "" {
		t.Error("fixed shops need no delivery address")
	}
	if errs := f.Validate(models.ShopTypeMobile, offered()); errs["address"] == "" {
		t.Error("mobile shops require a delivery address")
	}

	f.Address = "12 Nguyễn Trãi, Quận 5"
	if errs := f.Validate(models.ShopTypeMobile, offered()); errs["address"] != "" {
		t.Error("address provided, should pass")
	}
}

func TestRegistrationEmailValidation(t *testing.T) {
	f := RegistrationForm{Name: "A", Password: "secret1"}

	f.Email = "a@b.com"
	if errs := f.Validate(); errs["email"] != "" {
		t.Errorf("a@b.com should pass, got %q", errs["email"])
	}

	f.Email = "a@b"
	if errs := f.Validate(); errs["email"] != "Email không hợp lệ" {
		t.Errorf("a@b should fail the shape check, got %q", errs["email"])
	}

	f.Email = ""
	if errs := f.Validate(); errs["email"] != "Email là bắt buộc" {
		t.Errorf("empty email should fail as required, got %q", errs["email"])
	}
}

func TestRegistrationPasswordLength(t *testing.T) {
	f := RegistrationForm{Name: "A", Email: "a@b.com"}

	f.Password = "12345"
	if errs := f.Validate(); errs["password"] == "" {
		t.Error("five characters should fail")
	}

	f.Password = "123456"
	if errs := f.Validate(); errs["password"] != "" {
		t.Error("six characters should pass")
	}

	f.Password = ""
	if errs := f.Validate(); errs["password"] != "Mật khẩu là bắt buộc" {
		t.Errorf("empty password should fail as required, got %q", errs["password"])
	}
}

func TestRegistrationNameRequired(t *testing.T) {
	f := RegistrationForm{Email: "a@b.com", Password: "secret1"}
	if errs := f.Validate(); errs["name"] == "" {
		t.Fatal("missing name should fail")
	}
}
