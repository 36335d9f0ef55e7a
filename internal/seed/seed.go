package seed

import (
	"log/slog"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/repository"
)

// 曼达卢永市 27 个 barangay 的人口和风险等级，插入顺序决定候选向量中的区域顺序
var mandaluyong = []struct {
	name       string
	population int
	risk       int
}{
	{"Addition Hills", 35914, 3},
	{"Bagong Silang", 6867, 2},
	{"Barangka Drive", 13783, 2},
	{"Barangka Ibaba", 10555, 3},
	{"Barangka Ilaya", 10255, 2},
	{"Barangka Itaas", 5440, 1},
	{"Buayang Bato", 1307, 3},
	{"Burol", 2697, 1},
	{"Daang Bakal", 3656, 2},
	{"Hagdang Bato Itaas", 9625, 1},
	{"Hagdang Bato Libis", 5029, 2},
	{"Harapin Ang Bukas", 4554, 2},
	{"Highway Hills", 30488, 2},
	{"Hulo", 27533, 3},
	{"Ilaya", 6135, 3},
	{"Mabini-J.Rizal", 5026, 2},
	{"Malamig", 12295, 2},
	{"Namayan", 5738, 3},
	{"New Zaniga", 7291, 2},
	{"Old Zaniga", 6202, 2},
	{"Pag-asa", 4287, 2},
	{"Plainview", 24738, 2},
	{"Pleasant Hills", 6723, 1},
	{"Poblacion", 11848, 3},
	{"San Jose", 5988, 2},
	{"Vergara", 5420, 2},
	{"Wack-Wack Greenhills", 9109, 1},
}

// MandaluyongZones 每次调用都返回新的切片，调用方可以随意修改
func MandaluyongZones() []*domain.Zone {
	zones := make([]*domain.Zone, 0, len(mandaluyong))
	for _, z := range mandaluyong {
		zones = append(zones, &domain.Zone{
			Name:       z.name,
			Population: z.population,
			Risk:       z.risk,
		})
	}
	return zones
}

func SeedZones(r *repository.Repository) {
	zones := MandaluyongZones()
	if err := r.CreateZones(zones); err != nil {
		slog.Error("插入区域失败", "error", err)
		return
	}

	slog.Info("插入区域完成", "count", len(zones))
}
