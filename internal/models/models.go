package models

type Country struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"not null"                 json:"name"`
	ShortName string  `json:"shortName"`
	Version   int     `gorm:"not null;default:0"       json:"-"`
	Hotels    []Hotel `gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE" json:"hotels,omitempty"`
}

func (c Country) PrimaryKey() uint { return c.ID }
func (c Country) RowVersion() int  { return c.Version }

type Hotel struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"not null"                 json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID uint    `gorm:"index;not null"           json:"countryId"`
	Version   int     `gorm:"not null;default:0"       json:"-"`
}

func (h Hotel) PrimaryKey() uint { return h.ID }
func (h Hotel) RowVersion() int  { return h.Version }

type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string `gorm:"uniqueIndex;not null"     json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PasswordHash  string `gorm:"not null"                 json:"-"`
	SecurityStamp string `gorm:"not null"                 json:"-"`
}

type UserRole struct {
	ID     uint   `gorm:"primaryKey"                         json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_user_role;not null" json:"user_id"`
	Role   string `gorm:"uniqueIndex:idx_user_role;not null" json:"role"`
}

// NamedToken is a single-slot secret per (user, provider, purpose); the
// unique index makes two concurrent rotations of the same slot impossible.
type NamedToken struct {
	ID       uint   `gorm:"primaryKey"                          json:"id"`
	UserID   uint   `gorm:"uniqueIndex:idx_token_slot;not null" json:"user_id"`
	Provider string `gorm:"uniqueIndex:idx_token_slot;not null" json:"provider"`
	Purpose  string `gorm:"uniqueIndex:idx_token_slot;not null" json:"purpose"`
	Value    string `gorm:"not null"                            json:"-"`
}
