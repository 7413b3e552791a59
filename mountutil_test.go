//go:build linux || darwin

package main

import (
	"errors"

	"github.com/shirou/gopsutil/v3/disk"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable("belongsTo",
	func(partition, device string, want bool) {
		Expect(belongsTo(disk.PartitionStat{Device: partition}, Device{RawAddress: device})).To(Equal(want))
	},
	Entry("sd partition", "/dev/sdb1", "/dev/sdb", true),
	Entry("sd partition above nine", "/dev/sdb12", "/dev/sdb", true),
	Entry("a filesystem on the bare disk", "/dev/sdb", "/dev/sdb", true),
	Entry("another disk sharing a prefix", "/dev/sdba1", "/dev/sdb", false),
	Entry("mmc partition", "/dev/mmcblk0p1", "/dev/mmcblk0", true),
	Entry("mmc disk with a longer number", "/dev/mmcblk01", "/dev/mmcblk0", false),
	Entry("nvme partition", "/dev/nvme0n1p2", "/dev/nvme0n1", true),
	Entry("other nvme namespace", "/dev/nvme0n12", "/dev/nvme0n1", false),
	Entry("darwin slice", "/dev/disk4s1", "/dev/disk4", true),
	Entry("darwin disk sharing a prefix", "/dev/disk41s1", "/dev/disk4", false),
	Entry("unrelated device", "/dev/sdc1", "/dev/sdb", false),
)

var _ = Describe("partitionMounts", func() {
	var (
		m         *partitionMounts
		unmounted []string
	)

	BeforeEach(func() {
		unmounted = nil
		m = &partitionMounts{
			partitions: func(all bool) ([]disk.PartitionStat, error) {
				Expect(all).To(BeFalse())
				return []disk.PartitionStat{
					{Device: "/dev/nvme0n1p2", Mountpoint: "/"},
					{Device: "/dev/sdb1", Mountpoint: "/media/alice/BOOT"},
					{Device: "/dev/sdb2", Mountpoint: "/media/alice/rootfs"},
					{Device: "/dev/sdc1", Mountpoint: "/media/alice/OTHER"},
				}, nil
			},
			unmount: func(mp string) error {
				unmounted = append(unmounted, mp)
				return nil
			},
		}
	})

	It("lists the mount points of the device's partitions", func() {
		Expect(m.Mounted(Device{RawAddress: "/dev/sdb"})).To(Equal([]string{"/media/alice/BOOT", "/media/alice/rootfs"}))
		Expect(m.Mounted(Device{RawAddress: "/dev/sdd"})).To(BeEmpty())
	})

	It("reports a filesystem mounted on the whole disk", func() {
		m.partitions = func(bool) ([]disk.PartitionStat, error) {
			return []disk.PartitionStat{{Device: "/dev/sdb", Mountpoint: "/media/usb"}}, nil
		}
		Expect(m.Mounted(Device{RawAddress: "/dev/sdb"})).To(Equal([]string{"/media/usb"}))
	})

	It("wraps partition listing errors", func() {
		m.partitions = func(bool) ([]disk.PartitionStat, error) { return nil, errors.New("boom") }
		_, err := m.Mounted(Device{RawAddress: "/dev/sdb"})
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("unmounts every mount point in order", func() {
		Expect(m.Unmount([]string{"/media/alice/BOOT", "/media/alice/rootfs"})).To(Succeed())
		Expect(unmounted).To(Equal([]string{"/media/alice/BOOT", "/media/alice/rootfs"}))
	})

	It("stops at the first unmount failure", func() {
		m.unmount = func(mp string) error {
			unmounted = append(unmounted, mp)
			return errors.New("target is busy")
		}
		err := m.Unmount([]string{"/media/alice/BOOT", "/media/alice/rootfs"})
		Expect(err).To(MatchError(ContainSubstring("/media/alice/BOOT")))
		Expect(unmounted).To(Equal([]string{"/media/alice/BOOT"}))
	})
})
